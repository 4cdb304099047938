package engine

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// OverlapDetector finds line segments drawn on top of heavier ones.
type OverlapDetector struct {
	Settings model.Settings
}

// NewOverlapDetector creates a detector with the given settings.
func NewOverlapDetector(settings model.Settings) *OverlapDetector {
	return &OverlapDetector{Settings: settings}
}

// IsOverlapping reports whether b runs along a: the two are parallel and
// both endpoints of b lie within the overlap threshold of a's infinite line.
// Segments whose offsets from the line differ by more than the threshold
// are rejected. This is not a range test, so b may lie beyond a's extent.
func (d *OverlapDetector) IsOverlapping(a, b model.Segment) bool {
	if !geometry.IsParallel(a, b, d.Settings.AngleTolerance) {
		return false
	}
	th := d.Settings.OverlapThreshold
	d1 := geometry.DistanceToLine(b.Start, a)
	d2 := geometry.DistanceToLine(b.End, a)
	if math.Abs(d1-d2) > th {
		return false
	}
	return d1 <= th && d2 <= th
}

// Detect returns the IDs of redundant segments in the order they were
// flagged. Segments are visited by weight, heaviest first, with input order
// kept among equal weights. A visited segment that is not yet flagged flags
// every nearby overlapping segment of equal or lower weight. Reference-only
// segments take part as flaggers but are never flagged.
func (d *OverlapDetector) Detect(segs []model.WeightedSegment) ([]string, error) {
	if len(segs) == 0 {
		return nil, ErrEmptyInput
	}

	order := make([]int, len(segs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return segs[order[i]].Weight > segs[order[j]].Weight
	})

	bounds := make([]model.BoundingBox, len(segs))
	for i, s := range segs {
		bounds[i] = geometry.SegmentBounds(s.Segment)
	}

	flagged := roaring.New()
	var out []string
	for _, i := range order {
		if flagged.Contains(uint32(i)) {
			continue
		}
		cur := segs[i]
		area := bounds[i].Expand(d.Settings.OverlapThreshold)
		for j, other := range segs {
			if j == i || other.ReferenceOnly || other.Weight > cur.Weight {
				continue
			}
			if flagged.Contains(uint32(j)) || !area.Intersects(bounds[j]) {
				continue
			}
			if d.IsOverlapping(cur.Segment, other.Segment) {
				flagged.Add(uint32(j))
				out = append(out, other.ID)
			}
		}
	}
	return out, nil
}
