package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by AppConfig.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// AppConfig holds the drawing conventions and analysis settings applied to
// every cleanup operation.
type AppConfig struct {
	// DrawingName is the top-level layer the standard layers are created under.
	DrawingName string `json:"drawing_name"`

	BlockKeywords []string       `json:"block_keywords"`
	LayerRules    []LayerRule    `json:"layer_rules"`
	Standards     LayerStandards `json:"standards"`

	// Print frame, in inches of paper
	FrameWidth      float64   `json:"frame_width"`
	FrameHeight     float64   `json:"frame_height"`
	FrameMargin     float64   `json:"frame_margin"`
	ScaleCandidates []float64 `json:"scale_candidates"` // drawing units per paper unit, tried in order

	Settings Settings `json:"settings"`
}

// DefaultAppConfig returns an AppConfig for a landscape letter sheet and the
// standard marketing layers.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DrawingName:     "Plan Level 1",
		BlockKeywords:   DefaultBlockKeywords(),
		LayerRules:      DefaultLayerRules(),
		Standards:       DefaultLayerStandards(),
		FrameWidth:      11,
		FrameHeight:     8.5,
		FrameMargin:     0.5,
		ScaleCandidates: []float64{4, 8, 16, 32, 64, 100, 150, 200},
		Settings:        DefaultSettings(),
	}
}

// Validate checks the config for values the cleanup operations cannot use.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.DrawingName) == "" {
		return fmt.Errorf("%w: drawing name is empty", ErrInvalidConfig)
	}
	if strings.Contains(c.DrawingName, LayerSeparator) {
		return fmt.Errorf("%w: drawing name %q must be a top-level layer", ErrInvalidConfig, c.DrawingName)
	}
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, cat := range []LayerCategory{CategoryLinework, CategoryColor, CategoryLegend} {
		seen := make(map[string]bool)
		for _, spec := range c.Standards.Table(cat) {
			if spec.Name == "" || strings.Contains(spec.Name, LayerSeparator) {
				return fmt.Errorf("%w: %s layer name %q", ErrInvalidConfig, cat, spec.Name)
			}
			if seen[spec.Name] {
				return fmt.Errorf("%w: duplicate %s layer %q", ErrInvalidConfig, cat, spec.Name)
			}
			if spec.PrintWidth != nil && *spec.PrintWidth < 0 {
				return fmt.Errorf("%w: %s layer %q has negative print width", ErrInvalidConfig, cat, spec.Name)
			}
			seen[spec.Name] = true
		}
	}
	for _, rule := range c.LayerRules {
		if _, ok := c.Standards.Find(CategoryLinework, rule.Target); !ok {
			return fmt.Errorf("%w: layer rule target %q is not a linework layer", ErrInvalidConfig, rule.Target)
		}
	}
	if c.FrameWidth <= 2*c.FrameMargin || c.FrameHeight <= 2*c.FrameMargin {
		return fmt.Errorf("%w: frame %gx%g leaves no room inside margin %g",
			ErrInvalidConfig, c.FrameWidth, c.FrameHeight, c.FrameMargin)
	}
	for _, s := range c.ScaleCandidates {
		if s <= 0 {
			return fmt.Errorf("%w: scale candidate %g must be > 0", ErrInvalidConfig, s)
		}
	}
	return nil
}

// StandardLayer returns the full layer path of a standard layer.
func (c AppConfig) StandardLayer(category LayerCategory, name string) string {
	return LayerSpec{Name: name}.FullName(c.DrawingName, category)
}
