package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSettings is returned when a tolerance or threshold is out of range.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the tolerances and thresholds of the analysis core.
type Settings struct {
	GridDivision         int     `json:"grid_division"`          // Anchor grid divisions per axis
	AnchorTolerance      float64 `json:"anchor_tolerance"`       // Max distance for two anchors to coincide
	SimilarityPercentage float64 `json:"similarity_percentage"`  // Share of anchors that must coincide
	BBoxRejectMultiplier float64 `json:"bbox_reject_multiplier"` // Corner distance limit, in anchor tolerances
	OverlapThreshold     float64 `json:"overlap_threshold"`      // Max offset of overlapping lines
	AngleTolerance       float64 `json:"angle_tolerance"`        // Parallelism tolerance in radians
	PointTolerance       float64 `json:"point_tolerance"`        // Point-on-segment tolerance
}

// DefaultSettings returns the standard marketing drawing thresholds.
func DefaultSettings() Settings {
	return Settings{
		GridDivision:         20,
		AnchorTolerance:      0.001,
		SimilarityPercentage: 0.95,
		BBoxRejectMultiplier: 10,
		OverlapThreshold:     0.5,
		AngleTolerance:       math.Pi / 180,
		PointTolerance:       1e-6,
	}
}

// BBoxRejectDistance is the corner distance at which two block definitions
// are rejected without comparing anchors.
func (s Settings) BBoxRejectDistance() float64 {
	return s.AnchorTolerance * s.BBoxRejectMultiplier
}

// Validate checks that every value is usable.
func (s Settings) Validate() error {
	switch {
	case s.GridDivision < 1:
		return fmt.Errorf("%w: grid division must be at least 1, got %d", ErrInvalidSettings, s.GridDivision)
	case s.AnchorTolerance <= 0:
		return fmt.Errorf("%w: anchor tolerance must be > 0", ErrInvalidSettings)
	case s.SimilarityPercentage <= 0 || s.SimilarityPercentage > 1:
		return fmt.Errorf("%w: similarity percentage must be in (0, 1], got %g", ErrInvalidSettings, s.SimilarityPercentage)
	case s.BBoxRejectMultiplier <= 0:
		return fmt.Errorf("%w: bounding box reject multiplier must be > 0", ErrInvalidSettings)
	case s.OverlapThreshold < 0:
		return fmt.Errorf("%w: overlap threshold must be >= 0", ErrInvalidSettings)
	case s.AngleTolerance <= 0 || s.AngleTolerance >= math.Pi/2:
		return fmt.Errorf("%w: angle tolerance must be in (0, pi/2)", ErrInvalidSettings)
	case s.PointTolerance <= 0:
		return fmt.Errorf("%w: point tolerance must be > 0", ErrInvalidSettings)
	}
	return nil
}
