package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/importer"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	dxfdrawing "github.com/yofu/dxf/drawing"
)

// maxExplodeRounds bounds nested block expansion on export.
const maxExplodeRounds = 32

// aciColors holds the RGB values of the first AutoCAD color indices.
var aciColors = []model.RGB{
	1: {R: 255},
	2: {R: 255, G: 255},
	3: {G: 255},
	4: {G: 255, B: 255},
	5: {B: 255},
	6: {R: 255, B: 255},
	7: {R: 255, G: 255, B: 255},
	8: {R: 128, G: 128, B: 128},
	9: {R: 192, G: 192, B: 192},
}

// NearestACI returns the closest of the basic AutoCAD color indices.
// Black maps to 7, which the host shows in the foreground color.
func NearestACI(c model.RGB) color.ColorNumber {
	if c == (model.RGB{}) {
		return 7
	}
	best, bestDist := 7, math.Inf(1)
	for i := 1; i < len(aciColors); i++ {
		a := aciColors[i]
		dr := float64(int(c.R) - int(a.R))
		dg := float64(int(c.G) - int(a.G))
		db := float64(int(c.B) - int(a.B))
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return color.ColorNumber(best)
}

// ExportDXF writes the document as a DXF file. Block instances are written
// as their exploded geometry, hatches as their closed boundary and every
// non-line curve as a lightweight polyline. Layer paths use "$" as
// separator.
func ExportDXF(path string, doc *drawing.Document) error {
	flat, err := explodedCopy(doc)
	if err != nil {
		return err
	}

	dw := dxf.NewDrawing()
	for _, name := range flat.LayerNames() {
		l, _ := flat.Layer(name)
		if err := useLayer(dw, importer.LayerToDXF(name), NearestACI(l.Color)); err != nil {
			return err
		}
	}

	for _, id := range flat.ObjectIDs() {
		o, _ := flat.Object(id)
		if err := dw.ChangeLayer(importer.LayerToDXF(o.Layer)); err != nil {
			return fmt.Errorf("object %s: %w", id, err)
		}
		if err := writeObject(dw, o); err != nil {
			return fmt.Errorf("object %s: %w", id, err)
		}
	}
	return dw.SaveAs(path)
}

func useLayer(dw *dxfdrawing.Drawing, name string, cl color.ColorNumber) error {
	if dw.ChangeLayer(name) == nil {
		return nil
	}
	if _, err := dw.AddLayer(name, cl, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("layer %s: %w", name, err)
	}
	return nil
}

func explodedCopy(doc *drawing.Document) (*drawing.Document, error) {
	flat := drawing.FromSnapshot(doc.Snapshot())
	for round := 0; ; round++ {
		instances := flat.ObjectIDs(drawing.KindInstance)
		if len(instances) == 0 {
			return flat, nil
		}
		if round == maxExplodeRounds {
			return nil, fmt.Errorf("export dxf: blocks nested deeper than %d levels", maxExplodeRounds)
		}
		for _, id := range instances {
			if _, err := flat.ExplodeInstance(id); err != nil {
				return nil, fmt.Errorf("export dxf: %w", err)
			}
		}
	}
}

func writeObject(dw *dxfdrawing.Drawing, o *drawing.Object) error {
	var err error
	switch {
	case o.Curve != nil && o.Curve.IsLine():
		a, b := o.Curve.Points[0], o.Curve.Points[1]
		_, err = dw.Line(a.X, a.Y, 0, b.X, b.Y, 0)
	case o.Curve != nil:
		_, err = dw.LwPolyline(o.Curve.Closed, vertices(o.Curve.Points)...)
	case o.Text != nil:
		_, err = dw.Text(o.Text.Value, o.Text.Position.X, o.Text.Position.Y, 0, o.Text.Height)
	case o.Hatch != nil && len(o.Hatch.Boundary) > 2:
		_, err = dw.LwPolyline(true, vertices(o.Hatch.Boundary)...)
	}
	return err
}

func vertices(pts []model.Point2D) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
