package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// FlattenCurves converts curves into straight segments. Lines keep their ID;
// every piece of any other curve gets "<id>#<n>" with n counting from 1.
func FlattenCurves(curves []model.Curve) []model.IdentifiedSegment {
	var out []model.IdentifiedSegment
	for _, c := range curves {
		if c.IsLine() {
			out = append(out, model.IdentifiedSegment{
				ID:      c.ID,
				Segment: model.Segment{Start: c.Points[0], End: c.Points[1]},
			})
			continue
		}
		for i, s := range c.Segments() {
			out = append(out, model.IdentifiedSegment{
				ID:      fmt.Sprintf("%s#%d", c.ID, i+1),
				Segment: s,
			})
		}
	}
	return out
}

// ExtensionPlanner finds, for each end of each segment, the cheapest way to
// make it meet another segment.
type ExtensionPlanner struct {
	Settings model.Settings
}

// NewExtensionPlanner creates a planner with the given settings.
func NewExtensionPlanner(settings model.Settings) *ExtensionPlanner {
	return &ExtensionPlanner{Settings: settings}
}

// Plan compares every ordered pair of distinct segments and returns one
// record per segment, in input order. The cost of an intersection candidate
// is the gap between the intersection and the other segment plus the
// distance to this segment's nearer end. Parallel candidates cost the
// nearest endpoint-pair distance. A record only changes on strict
// improvement, so the first candidate wins ties.
func (p *ExtensionPlanner) Plan(segs []model.IdentifiedSegment) ([]model.CurveExtensionRecord, error) {
	if len(segs) == 0 {
		return nil, ErrEmptyInput
	}
	ids := make([]string, len(segs))
	for i, s := range segs {
		ids[i] = s.ID
	}
	if err := checkUnique(ids); err != nil {
		return nil, err
	}

	records := make([]model.CurveExtensionRecord, len(segs))
	for i := range segs {
		rec := model.CurveExtensionRecord{
			CurveID:      segs[i].ID,
			MinDistStart: math.Inf(1),
			MinDistEnd:   math.Inf(1),
		}
		curve := segs[i].Segment
		for j := range segs {
			if i == j {
				continue
			}
			other := segs[j].Segment
			if inter, ok := geometry.IntersectLines(curve, other); ok {
				p.considerIntersection(&rec, curve, other, inter)
			} else if geometry.IsParallel(curve, other, p.Settings.AngleTolerance) {
				considerParallel(&rec, curve, segs[j].ID, other)
			}
		}
		records[i] = rec
	}
	return records, nil
}

func (p *ExtensionPlanner) considerIntersection(rec *model.CurveExtensionRecord, curve, other model.Segment, inter model.Point2D) {
	cost := 0.0
	if !geometry.PointOnSegment(inter, other, p.Settings.PointTolerance) {
		cost = math.Min(geometry.Distance(inter, other.Start), geometry.Distance(inter, other.End))
	}
	target := model.ExtensionTarget{Kind: model.TargetPoint, Point: inter}

	ds := geometry.Distance(inter, curve.Start)
	de := geometry.Distance(inter, curve.End)
	if ds < de {
		cost += ds
		if cost < rec.MinDistStart {
			rec.MinDistStart = cost
			rec.StartTarget = target
		}
		return
	}
	cost += de
	if cost < rec.MinDistEnd {
		rec.MinDistEnd = cost
		rec.EndTarget = target
	}
}

func considerParallel(rec *model.CurveExtensionRecord, curve model.Segment, otherID string, other model.Segment) {
	_, minStart := geometry.NearestEndpoint(curve.Start, other)
	_, minEnd := geometry.NearestEndpoint(curve.End, other)
	target := model.ExtensionTarget{Kind: model.TargetCurve, CurveID: otherID}

	switch {
	case minStart < minEnd && minStart < rec.MinDistStart:
		rec.MinDistStart = minStart
		rec.StartTarget = target
	case minEnd < minStart && minEnd < rec.MinDistEnd:
		rec.MinDistEnd = minEnd
		rec.EndTarget = target
	}
}

// Apply executes records in order against a working copy of segs. Ends with
// no target or zero cost are left alone. Point targets move the end unless
// the point already lies on the segment. Curve targets extend the end along
// the segment's direction until it meets the target as it is at that moment,
// and do nothing when the direction never reaches it.
func (p *ExtensionPlanner) Apply(segs []model.IdentifiedSegment, records []model.CurveExtensionRecord) ([]model.IdentifiedSegment, []model.Extension, error) {
	current := make([]model.IdentifiedSegment, len(segs))
	copy(current, segs)
	index := make(map[string]int, len(current))
	for i, s := range current {
		if _, dup := index[s.ID]; dup {
			return nil, nil, &ErrDuplicateID{ID: s.ID}
		}
		index[s.ID] = i
	}

	tol := p.Settings.PointTolerance
	var moves []model.Extension
	for _, rec := range records {
		idx, ok := index[rec.CurveID]
		if !ok {
			return nil, nil, fmt.Errorf("extension record for unknown segment %q", rec.CurveID)
		}
		for _, end := range []model.CurveEnd{model.EndStart, model.EndEnd} {
			target, cost := rec.Target(end)
			if target.Kind == model.TargetNone || cost == 0 {
				continue
			}
			seg := current[idx].Segment
			from := seg.Point(end)

			var to model.Point2D
			switch target.Kind {
			case model.TargetPoint:
				if geometry.PointOnSegment(target.Point, seg, tol) {
					continue
				}
				to = target.Point
			case model.TargetCurve:
				tIdx, ok := index[target.CurveID]
				if !ok {
					return nil, nil, fmt.Errorf("extension target %q of %q not found", target.CurveID, rec.CurveID)
				}
				to, ok = ExtendToSegment(seg, end, current[tIdx].Segment, tol)
				if !ok {
					continue
				}
			}

			current[idx].Segment = seg.WithPoint(end, to)
			moves = append(moves, model.Extension{CurveID: rec.CurveID, End: end, From: from, To: to})
		}
	}
	return current, moves, nil
}

// ExtendToSegment returns where the given end of seg lands when extended
// along the segment direction until it meets target. A collinear target is
// met at its nearest endpoint ahead of the end. It reports false when the
// end already touches target or when the extension would never reach it.
func ExtendToSegment(seg model.Segment, end model.CurveEnd, target model.Segment, tol float64) (model.Point2D, bool) {
	tip := seg.Point(end)
	if geometry.PointOnSegment(tip, target, tol) {
		return model.Point2D{}, false
	}
	ahead := func(q model.Point2D) bool {
		t := geometry.Parameter(q, seg)
		if end == model.EndEnd {
			return t > 1
		}
		return t < 0
	}

	if inter, ok := geometry.IntersectLines(seg, target); ok {
		if !geometry.PointOnSegment(inter, target, tol) || !ahead(inter) {
			return model.Point2D{}, false
		}
		return inter, true
	}

	if geometry.DistanceToLine(target.Start, seg) > tol || geometry.DistanceToLine(target.End, seg) > tol {
		return model.Point2D{}, false
	}
	best, bestDist, found := model.Point2D{}, math.Inf(1), false
	for _, q := range []model.Point2D{target.Start, target.End} {
		if !ahead(q) {
			continue
		}
		if d := geometry.Distance(tip, q); d < bestDist {
			best, bestDist, found = q, d, true
		}
	}
	return best, found
}
