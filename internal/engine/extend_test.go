package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(id string, x1, y1, x2, y2 float64) model.IdentifiedSegment {
	return model.IdentifiedSegment{
		ID:      id,
		Segment: model.Segment{Start: model.Point2D{X: x1, Y: y1}, End: model.Point2D{X: x2, Y: y2}},
	}
}

func pt(x, y float64) model.Point2D {
	return model.Point2D{X: x, Y: y}
}

func planAndApply(t *testing.T, segs []model.IdentifiedSegment) ([]model.CurveExtensionRecord, []model.IdentifiedSegment, []model.Extension) {
	t.Helper()
	p := NewExtensionPlanner(model.DefaultSettings())
	records, err := p.Plan(segs)
	require.NoError(t, err)
	require.Len(t, records, len(segs))
	result, moves, err := p.Apply(segs, records)
	require.NoError(t, err)
	return records, result, moves
}

func TestFlattenCurves(t *testing.T) {
	curves := []model.Curve{
		lineCurve("L", 0, 0, 1, 0),
		{
			ID:     "P",
			Kind:   model.CurvePolyline,
			Points: model.Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			Closed: true,
		},
	}
	segs := FlattenCurves(curves)
	require.Len(t, segs, 4)
	assert.Equal(t, "L", segs[0].ID)
	assert.Equal(t, "P#1", segs[1].ID)
	assert.Equal(t, "P#2", segs[2].ID)
	assert.Equal(t, "P#3", segs[3].ID)
	assert.Equal(t, pt(0, 0), segs[3].Segment.End, "closing piece returns to the first vertex")
}

func TestPlan_TJunction(t *testing.T) {
	records, result, moves := planAndApply(t, []model.IdentifiedSegment{
		seg("H", 0, 0, 10, 0),
		seg("V", 5, 1, 5, 5),
	})

	h, v := records[0], records[1]
	assert.Equal(t, model.TargetPoint, h.EndTarget.Kind)
	assert.InDelta(t, 6.0, h.MinDistEnd, 1e-9, "gap to V plus distance to H's end")
	assert.Equal(t, model.TargetNone, h.StartTarget.Kind)

	assert.Equal(t, model.TargetPoint, v.StartTarget.Kind)
	assert.Equal(t, pt(5, 0), v.StartTarget.Point)
	assert.InDelta(t, 1.0, v.MinDistStart, 1e-9)
	assert.True(t, math.IsInf(v.MinDistEnd, 1))

	require.Len(t, moves, 1, "H already contains the intersection")
	assert.Equal(t, model.Extension{CurveID: "V", End: model.EndStart, From: pt(5, 1), To: pt(5, 0)}, moves[0])
	assert.Equal(t, pt(5, 0), result[1].Segment.Start)
	assert.Equal(t, seg("H", 0, 0, 10, 0), result[0])
}

func TestPlan_CornerGap(t *testing.T) {
	_, result, moves := planAndApply(t, []model.IdentifiedSegment{
		seg("A", 0, 0, 4, 0),
		seg("B", 5, 1, 5, 5),
	})
	assert.Len(t, moves, 2)
	assert.Equal(t, pt(5, 0), result[0].Segment.End)
	assert.Equal(t, pt(5, 0), result[1].Segment.Start)
}

func TestPlan_ThreeCollinearSegments(t *testing.T) {
	_, result, _ := planAndApply(t, []model.IdentifiedSegment{
		seg("A", 0, 0, 4, 0),
		seg("M", 5, 0, 7, 0),
		seg("B", 8, 0, 12, 0),
	})

	a, m, b := result[0].Segment, result[1].Segment, result[2].Segment
	assert.Equal(t, pt(0, 0), a.Start)
	assert.Equal(t, m.Start, a.End, "A meets M")
	assert.Equal(t, b.Start, m.End, "M meets B")
	assert.Equal(t, pt(12, 0), b.End)
}

func TestPlan_ParallelUsesNearestEndpoints(t *testing.T) {
	records, result, moves := planAndApply(t, []model.IdentifiedSegment{
		seg("C", 0, 0, 4, 0),
		seg("D", 6, 0, 10, 0),
	})

	c, d := records[0], records[1]
	assert.Equal(t, model.ExtensionTarget{Kind: model.TargetCurve, CurveID: "D"}, c.EndTarget)
	assert.InDelta(t, 2.0, c.MinDistEnd, 1e-9)
	assert.Equal(t, model.TargetNone, c.StartTarget.Kind)
	assert.Equal(t, model.ExtensionTarget{Kind: model.TargetCurve, CurveID: "C"}, d.StartTarget)
	assert.InDelta(t, 2.0, d.MinDistStart, 1e-9)

	require.Len(t, moves, 1, "once C reaches D the gap is closed")
	assert.Equal(t, pt(6, 0), result[0].Segment.End)
	assert.Equal(t, pt(6, 0), result[1].Segment.Start)
}

func TestPlan_ParallelOffsetIsNotExtended(t *testing.T) {
	records, result, moves := planAndApply(t, []model.IdentifiedSegment{
		seg("C", 0, 0, 4, 0),
		seg("E", 6, 1, 10, 1),
	})
	assert.Equal(t, model.TargetCurve, records[0].EndTarget.Kind)
	assert.Empty(t, moves, "an offset parallel target is never met")
	assert.Equal(t, seg("C", 0, 0, 4, 0), result[0])
}

func TestPlan_ParallelTieRecordsNothing(t *testing.T) {
	records, _, _ := planAndApply(t, []model.IdentifiedSegment{
		seg("C", 0, 0, 4, 0),
		seg("W", 0, 2, 4, 2),
	})
	assert.Equal(t, model.TargetNone, records[0].StartTarget.Kind)
	assert.Equal(t, model.TargetNone, records[0].EndTarget.Kind)
}

func TestPlan_TouchingSegmentsAreLeftAlone(t *testing.T) {
	records, result, moves := planAndApply(t, []model.IdentifiedSegment{
		seg("C", 0, 0, 5, 0),
		seg("D", 5, 0, 10, 0),
		seg("V", 5, 0, 5, 5),
	})

	assert.Equal(t, 0.0, records[0].MinDistEnd)
	assert.Equal(t, 0.0, records[1].MinDistStart)
	assert.Equal(t, 0.0, records[2].MinDistStart)
	assert.Empty(t, moves)
	assert.Equal(t, seg("C", 0, 0, 5, 0), result[0])
	assert.Equal(t, seg("D", 5, 0, 10, 0), result[1])
	assert.Equal(t, seg("V", 5, 0, 5, 5), result[2])
}

func TestPlan_EmptyInput(t *testing.T) {
	p := NewExtensionPlanner(model.DefaultSettings())
	_, err := p.Plan(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestPlan_DuplicateIDs(t *testing.T) {
	p := NewExtensionPlanner(model.DefaultSettings())
	_, err := p.Plan([]model.IdentifiedSegment{seg("A", 0, 0, 1, 0), seg("A", 0, 1, 1, 1)})
	var dup *ErrDuplicateID
	assert.True(t, errors.As(err, &dup))
}

func TestApply_UnknownRecord(t *testing.T) {
	p := NewExtensionPlanner(model.DefaultSettings())
	_, _, err := p.Apply([]model.IdentifiedSegment{seg("A", 0, 0, 1, 0)}, []model.CurveExtensionRecord{{CurveID: "missing"}})
	assert.Error(t, err)
}

func TestExtendToSegment(t *testing.T) {
	tol := 1e-6
	base := model.Segment{Start: pt(0, 0), End: pt(4, 0)}

	tests := []struct {
		name   string
		end    model.CurveEnd
		target model.Segment
		want   model.Point2D
		ok     bool
	}{
		{"crossing ahead of end", model.EndEnd, model.Segment{Start: pt(6, -1), End: pt(6, 1)}, pt(6, 0), true},
		{"crossing ahead of start", model.EndStart, model.Segment{Start: pt(-2, -1), End: pt(-2, 1)}, pt(-2, 0), true},
		{"crossing behind end", model.EndEnd, model.Segment{Start: pt(-2, -1), End: pt(-2, 1)}, model.Point2D{}, false},
		{"line misses target", model.EndEnd, model.Segment{Start: pt(6, 1), End: pt(6, 3)}, model.Point2D{}, false},
		{"collinear ahead", model.EndEnd, model.Segment{Start: pt(9, 0), End: pt(7, 0)}, pt(7, 0), true},
		{"already touching", model.EndEnd, model.Segment{Start: pt(4, -1), End: pt(4, 1)}, model.Point2D{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtendToSegment(base, tt.end, tt.target, tol)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want.X, got.X, 1e-9)
				assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			}
		})
	}
}
