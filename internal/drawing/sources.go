package drawing

import (
	"fmt"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// BlockSource enumerates block definitions and their instances.
type BlockSource interface {
	ListBlockDefinitions() []string
	BlockDefinitionCurves(name string) ([]model.Curve, error)
	BlockDefinitionBounds(name string) (model.BoundingBox, error)
	BlockInstances(name string) []string
}

// CurveSource answers geometric questions about curve objects.
type CurveSource interface {
	CurveIsLine(id string) (bool, error)
	CurveEndpoints(id string) (model.Segment, error)
	FlattenToSegments(id string) ([]string, error)
}

// LayerSource reports layer membership and print widths.
type LayerSource interface {
	LayerOf(id string) (string, error)
	LayerPrintWidth(layer string) (float64, error)
}

// Sink receives the effects of cleanup operations.
type Sink interface {
	Group(ids []string) string
	ExtendSegment(id string, end model.CurveEnd, target model.Point2D) error
	SetLayer(ids []string, layer string) error
	Select(ids []string)
}

var (
	_ BlockSource = (*Document)(nil)
	_ CurveSource = (*Document)(nil)
	_ LayerSource = (*Document)(nil)
	_ Sink        = (*Document)(nil)
)

// CurveIsLine reports whether the object is a single straight line.
func (d *Document) CurveIsLine(id string) (bool, error) {
	o, err := d.object(id)
	if err != nil {
		return false, err
	}
	if o.Curve == nil {
		return false, fmt.Errorf("object %q is a %s: %w", id, o.Kind, ErrNotCurve)
	}
	return o.Curve.IsLine(), nil
}

// CurveEndpoints returns the start and end of a curve object.
func (d *Document) CurveEndpoints(id string) (model.Segment, error) {
	c, err := d.Curve(id)
	if err != nil {
		return model.Segment{}, err
	}
	return model.Segment{Start: c.Start(), End: c.End()}, nil
}

// FlattenToSegments replaces a non-line curve with one line per straight
// piece on the same layer and returns the new IDs. A line is returned as is.
// A curve with fewer than two points has no pieces; it is kept and nil is
// returned.
func (d *Document) FlattenToSegments(id string) ([]string, error) {
	o, err := d.object(id)
	if err != nil {
		return nil, err
	}
	if o.Curve == nil {
		return nil, fmt.Errorf("flatten %q: %w", id, ErrNotCurve)
	}
	if o.Curve.IsLine() {
		return []string{id}, nil
	}

	segs := o.Curve.Segments()
	if len(segs) == 0 {
		return nil, nil
	}
	var out []string
	for _, s := range segs {
		line := &Object{
			Kind:             KindCurve,
			Layer:            o.Layer,
			Curve:            &model.Curve{Kind: model.CurveLine, Points: model.Outline{s.Start, s.End}, Linetype: o.Curve.Linetype},
			Color:            o.Color,
			ColorSource:      o.ColorSource,
			PrintColorSource: o.PrintColorSource,
			PrintWidthSource: o.PrintWidthSource,
		}
		out = append(out, d.add(line))
	}
	d.Delete(id)
	return out, nil
}
