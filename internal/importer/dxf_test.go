package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	dxfdrawing "github.com/yofu/dxf/drawing"
)

func writeDXF(t *testing.T, path string, build func(dw *dxfdrawing.Drawing)) {
	t.Helper()
	dw := dxf.NewDrawing()
	build(dw)
	require.NoError(t, dw.SaveAs(path))
}

func TestLayerNames(t *testing.T) {
	assert.Equal(t, "Plan::Linework_4", LayerFromDXF("Plan$Linework_4"))
	assert.Equal(t, "Plan$Color_Lab", LayerToDXF("Plan::Color_Lab"))
	assert.Equal(t, "A-WALL", LayerFromDXF(LayerToDXF("A-WALL")))
}

func TestImportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	writeDXF(t, path, func(dw *dxfdrawing.Drawing) {
		_, err := dw.AddLayer("Plan$Walls", dxf.DefaultColor, dxf.DefaultLineType, true)
		require.NoError(t, err)
		_, err = dw.Line(0, 0, 0, 10, 0, 0)
		require.NoError(t, err)
		_, err = dw.Circle(5, 5, 0, 2)
		require.NoError(t, err)
		_, err = dw.Text("Lab 101", 1, 2, 0, 0.5)
		require.NoError(t, err)
	})

	result := ImportDXF(path)
	require.Empty(t, result.Errors)
	doc := result.Document
	require.NotNil(t, doc)

	curves := doc.ObjectIDs(drawing.KindCurve)
	require.Len(t, curves, 2)

	line, err := doc.Curve(curves[0])
	require.NoError(t, err)
	assert.True(t, line.IsLine())
	assert.Equal(t, model.Outline{{X: 0, Y: 0}, {X: 10, Y: 0}}, line.Points)
	assert.Equal(t, "Plan::Walls", line.Layer)

	circle, err := doc.Curve(curves[1])
	require.NoError(t, err)
	assert.Equal(t, model.CurveCircle, circle.Kind)
	assert.True(t, circle.Closed)
	assert.Len(t, circle.Points, geometry.DefaultCircleSegments)

	texts := doc.ObjectIDs(drawing.KindText)
	require.Len(t, texts, 1)
	o, _ := doc.Object(texts[0])
	assert.Equal(t, "Lab 101", o.Text.Value)
	assert.Equal(t, model.Point2D{X: 1, Y: 2}, o.Text.Position)

	_, ok := doc.Layer("Plan")
	assert.True(t, ok, "parent layers are created")
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/plan.dxf")
	assert.NotEmpty(t, result.Errors)
	assert.Nil(t, result.Document)
}

func TestImportDXF_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	writeDXF(t, path, func(*dxfdrawing.Drawing) {})

	result := ImportDXF(path)
	assert.Equal(t, []string{"DXF file contains no entities"}, result.Errors)
}

func TestLoadBlockLibrary(t *testing.T) {
	dir := t.TempDir()
	writeDXF(t, filepath.Join(dir, "Chair.dxf"), func(dw *dxfdrawing.Drawing) {
		_, err := dw.Line(0, 0, 0, 1, 0, 0)
		require.NoError(t, err)
		_, err = dw.Line(1, 0, 0, 1, 1, 0)
		require.NoError(t, err)
	})
	writeDXF(t, filepath.Join(dir, "Table.DXF"), func(dw *dxfdrawing.Drawing) {
		_, err := dw.Circle(0, 0, 0, 1)
		require.NoError(t, err)
	})
	writeDXF(t, filepath.Join(dir, "Blank.dxf"), func(*dxfdrawing.Drawing) {})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("blocks"), 0644))

	doc := drawing.New()
	require.NoError(t, doc.AddBlock("Table", nil))

	res, err := LoadBlockLibrary(context.Background(), doc, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chair"}, res.Blocks)
	assert.Len(t, res.Warnings, 2, "Blank has no entities and Table exists")

	curves, err := doc.BlockDefinitionCurves("Chair")
	require.NoError(t, err)
	assert.Len(t, curves, 2)
}

func TestLoadBlockLibrary_MissingDir(t *testing.T) {
	_, err := LoadBlockLibrary(context.Background(), drawing.New(), "/nonexistent/blocks")
	assert.Error(t, err)
}

func TestLoadBlockLibrary_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeDXF(t, filepath.Join(dir, "Chair.dxf"), func(dw *dxfdrawing.Drawing) {
		_, err := dw.Line(0, 0, 0, 1, 0, 0)
		require.NoError(t, err)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadBlockLibrary(ctx, drawing.New(), dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadBlockLibraryN_SingleWorker(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"B.dxf", "A.dxf", "C.dxf"} {
		writeDXF(t, filepath.Join(dir, name), func(dw *dxfdrawing.Drawing) {
			_, err := dw.Line(0, 0, 0, 2, 0, 0)
			require.NoError(t, err)
		})
	}

	doc := drawing.New()
	res, err := LoadBlockLibraryN(context.Background(), doc, dir, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Blocks)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []string{"A", "B", "C"}, doc.ListBlockDefinitions())
}
