package engine

import (
	"testing"

	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weighted(id string, weight float64, x1, y1, x2, y2 float64) model.WeightedSegment {
	return model.WeightedSegment{
		ID:      id,
		Segment: model.Segment{Start: pt(x1, y1), End: pt(x2, y2)},
		Weight:  weight,
	}
}

func TestIsOverlapping(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())
	a := model.Segment{Start: pt(0, 0), End: pt(100, 0)}

	tests := []struct {
		name string
		b    model.Segment
		want bool
	}{
		{"coincident", model.Segment{Start: pt(0, 0), End: pt(100, 0)}, true},
		{"reversed", model.Segment{Start: pt(100, 0), End: pt(0, 0)}, true},
		{"offset within threshold", model.Segment{Start: pt(10, 0.3), End: pt(60, 0.3)}, true},
		{"offset beyond threshold", model.Segment{Start: pt(10, 1), End: pt(60, 1)}, false},
		{"collinear past the end", model.Segment{Start: pt(200, 0), End: pt(300, 0)}, true},
		{"crossing", model.Segment{Start: pt(50, -10), End: pt(50, 10)}, false},
		{"diverging", model.Segment{Start: pt(0, 0.1), End: pt(100, 1.6)}, false},
		{"degenerate", model.Segment{Start: pt(5, 0), End: pt(5, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsOverlapping(a, tt.b))
		})
	}
}

func TestDetect_LighterSegmentIsRedundant(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())

	for _, order := range [][]model.WeightedSegment{
		{weighted("A", 0.5, 0, 0, 10, 0), weighted("B", 0.25, 2, 0.1, 8, 0.1)},
		{weighted("B", 0.25, 2, 0.1, 8, 0.1), weighted("A", 0.5, 0, 0, 10, 0)},
	} {
		flagged, err := d.Detect(order)
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, flagged)
	}
}

func TestDetect_Scenarios(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())

	tests := []struct {
		name string
		segs []model.WeightedSegment
		want []string
	}{
		{
			"parallel offset by 0.2",
			[]model.WeightedSegment{weighted("A", 2, 0, 0, 10, 0), weighted("B", 1, 0, 0.2, 10, 0.2)},
			[]string{"B"},
		},
		{
			"coincident with different weights",
			[]model.WeightedSegment{weighted("L", 1, 0, 0, 10, 0), weighted("H", 3, 0, 0, 10, 0)},
			[]string{"L"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagged, err := d.Detect(tt.segs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flagged)
		})
	}
}

func TestDetect_EqualWeightKeepsFirst(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())
	flagged, err := d.Detect([]model.WeightedSegment{
		weighted("X", 0.35, 0, 0, 10, 0),
		weighted("Y", 0.35, 0, 0, 10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, flagged)
}

func TestDetect_FlaggedSegmentsDoNotFlag(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())
	// B is flagged by A, so it must not flag C even though C overlaps B only.
	flagged, err := d.Detect([]model.WeightedSegment{
		weighted("A", 0.5, 0, 0, 10, 0),
		weighted("B", 0.35, 0, 0.4, 10, 0.4),
		weighted("C", 0.25, 0, 0.8, 10, 0.8),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, flagged)
}

func TestDetect_ReferenceOnlyIsNeverFlagged(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())

	ref := weighted("P#1", 0.5, 0, 0, 10, 0)
	ref.ReferenceOnly = true
	flagged, err := d.Detect([]model.WeightedSegment{ref, weighted("L", 0.25, 0, 0, 10, 0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"L"}, flagged)

	ref.Weight = 0.1
	flagged, err = d.Detect([]model.WeightedSegment{ref, weighted("L", 0.25, 0, 0, 10, 0)})
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestDetect_FarApart(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())
	flagged, err := d.Detect([]model.WeightedSegment{
		weighted("A", 0.5, 0, 0, 10, 0),
		weighted("B", 0.25, 20, 0, 30, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, flagged, "collinear segments outside the search area are kept")
}

func TestDetect_EmptyInput(t *testing.T) {
	d := NewOverlapDetector(model.DefaultSettings())
	_, err := d.Detect(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
