package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
	"golang.org/x/sync/errgroup"
)

// DXFLayerSeparator stands in for the layer path separator in DXF layer
// names, which cannot carry "::".
const DXFLayerSeparator = "$"

// DrawingResult holds the results of a DXF import.
type DrawingResult struct {
	Document *drawing.Document
	Errors   []string
	Warnings []string
}

// LayerFromDXF converts a DXF layer name to a document layer path.
func LayerFromDXF(name string) string {
	return strings.ReplaceAll(name, DXFLayerSeparator, model.LayerSeparator)
}

// LayerToDXF converts a document layer path to a DXF layer name.
func LayerToDXF(name string) string {
	return strings.ReplaceAll(name, model.LayerSeparator, DXFLayerSeparator)
}

// ImportDXF reads LINE, LWPOLYLINE, ARC, CIRCLE and TEXT entities from a DXF
// file into a new document. Polyline bulges, arcs and circles are
// approximated by straight pieces. Other entity types are counted and
// reported as warnings.
func ImportDXF(path string) DrawingResult {
	result := DrawingResult{}

	objects, skipped, err := readDXF(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}
	if len(objects) == 0 && len(skipped) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	doc := drawing.New()
	for _, o := range objects {
		switch o.Kind {
		case drawing.KindText:
			doc.AddText(o.Layer, o.Text.Value, o.Text.Position, o.Text.Height)
		default:
			doc.AddCurve(o.Layer, *o.Curve)
		}
	}
	result.Document = doc
	result.Warnings = append(result.Warnings, skippedWarnings(skipped)...)
	return result
}

// readDXF converts the supported entities of a DXF file into detached
// objects and counts the skipped entities by type.
func readDXF(path string) ([]*drawing.Object, map[string]int, error) {
	d, err := dxf.Open(path)
	if err != nil {
		return nil, nil, err
	}

	var objects []*drawing.Object
	skipped := make(map[string]int)
	for _, ent := range d.Entities() {
		o, ok := objectFromEntity(ent)
		if !ok {
			skipped[entityName(ent)]++
			continue
		}
		objects = append(objects, o)
	}
	return objects, skipped, nil
}

func objectFromEntity(ent entity.Entity) (*drawing.Object, bool) {
	layer := drawing.DefaultLayer
	if l := ent.Layer(); l != nil && l.Name() != "" {
		layer = LayerFromDXF(l.Name())
	}

	curve := func(c model.Curve) (*drawing.Object, bool) {
		if len(c.Points) < 2 {
			return nil, false
		}
		return &drawing.Object{Kind: drawing.KindCurve, Layer: layer, Curve: &c}, true
	}

	switch e := ent.(type) {
	case *entity.Line:
		return curve(model.Curve{
			Kind:   model.CurveLine,
			Points: model.Outline{{X: e.Start[0], Y: e.Start[1]}, {X: e.End[0], Y: e.End[1]}},
		})

	case *entity.LwPolyline:
		vertices := make([]model.Point2D, len(e.Vertices))
		for i, v := range e.Vertices {
			vertices[i] = model.Point2D{X: v[0], Y: v[1]}
		}
		pts := geometry.PolylinePoints(vertices, e.Bulges, e.Closed, geometry.DefaultArcSegments)
		kind := model.CurvePolyline
		if len(pts) == 2 && !e.Closed {
			kind = model.CurveLine
		}
		return curve(model.Curve{Kind: kind, Points: pts, Closed: e.Closed && len(pts) > 2})

	case *entity.Circle:
		center := model.Point2D{X: e.Center[0], Y: e.Center[1]}
		return curve(model.Curve{
			Kind:   model.CurveCircle,
			Points: geometry.CirclePoints(center, e.Radius, geometry.DefaultCircleSegments),
			Closed: true,
		})

	case *entity.Arc:
		center := model.Point2D{X: e.Circle.Center[0], Y: e.Circle.Center[1]}
		return curve(model.Curve{
			Kind:   model.CurveArc,
			Points: geometry.ArcPoints(center, e.Circle.Radius, e.Angle[0], e.Angle[1], geometry.DefaultArcSegments),
		})

	case *entity.Text:
		return &drawing.Object{
			Kind:  drawing.KindText,
			Layer: layer,
			Text: &drawing.Text{
				Value:    e.Value,
				Position: model.Point2D{X: e.Coord1[0], Y: e.Coord1[1]},
				Height:   e.Height,
			},
		}, true
	}
	return nil, false
}

func entityName(ent entity.Entity) string {
	return strings.ToUpper(strings.TrimPrefix(fmt.Sprintf("%T", ent), "*entity."))
}

func skippedWarnings(skipped map[string]int) []string {
	names := make([]string, 0, len(skipped))
	for name := range skipped {
		names = append(names, name)
	}
	sort.Strings(names)
	var warnings []string
	for _, name := range names {
		warnings = append(warnings, fmt.Sprintf("Skipped %d unsupported %s entities", skipped[name], name))
	}
	return warnings
}

// LibraryResult lists the blocks loaded from a block library.
type LibraryResult struct {
	Blocks   []string
	Warnings []string
}

// DefaultLibraryWorkers bounds the number of block files parsed at once.
const DefaultLibraryWorkers = 4

// LoadBlockLibrary reads every *.dxf file in dir as one block definition
// named after the file and registers it in doc. Files are parsed
// concurrently; blocks are registered in file name order. Files without
// supported entities and names already defined in doc are skipped with a
// warning.
func LoadBlockLibrary(ctx context.Context, doc *drawing.Document, dir string) (LibraryResult, error) {
	return LoadBlockLibraryN(ctx, doc, dir, DefaultLibraryWorkers)
}

// LoadBlockLibraryN is LoadBlockLibrary with at most workers files parsed
// at once. A non-positive count uses DefaultLibraryWorkers.
func LoadBlockLibraryN(ctx context.Context, doc *drawing.Document, dir string, workers int) (LibraryResult, error) {
	var res LibraryResult
	if workers <= 0 {
		workers = DefaultLibraryWorkers
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return res, fmt.Errorf("read block library: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".dxf") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	parsed := make([][]*drawing.Object, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			objects, _, err := readDXF(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("block %s: %w", name, err)
			}
			parsed[i] = objects
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	for i, file := range files {
		name := strings.TrimSuffix(file, filepath.Ext(file))
		if len(parsed[i]) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped block %s: no supported entities", name))
			continue
		}
		if err := doc.AddBlock(name, parsed[i]); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped block %s: %v", name, err))
			continue
		}
		res.Blocks = append(res.Blocks, name)
	}
	return res, nil
}
