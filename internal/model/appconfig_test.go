package model

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultAppConfigIsValid(t *testing.T) {
	cfg := DefaultAppConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Settings != DefaultSettings() {
		t.Error("default config should carry the default settings")
	}
	if len(cfg.ScaleCandidates) == 0 {
		t.Error("default config should have scale candidates")
	}
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*AppConfig)
	}{
		{"empty drawing name", func(c *AppConfig) { c.DrawingName = "  " }},
		{"nested drawing name", func(c *AppConfig) { c.DrawingName = "A::B" }},
		{"bad settings", func(c *AppConfig) { c.Settings.GridDivision = 0 }},
		{"duplicate linework", func(c *AppConfig) {
			c.Standards.Linework = append(c.Standards.Linework, LayerSpec{Name: "4"})
		}},
		{"layer name with separator", func(c *AppConfig) {
			c.Standards.Colors = append(c.Standards.Colors, LayerSpec{Name: "a::b"})
		}},
		{"negative print width", func(c *AppConfig) {
			w := -1.0
			c.Standards.Legend[0].PrintWidth = &w
		}},
		{"unknown rule target", func(c *AppConfig) {
			c.LayerRules = append(c.LayerRules, LayerRule{Target: "Nope", Keywords: []string{"x"}})
		}},
		{"frame inside margin", func(c *AppConfig) { c.FrameMargin = 5 }},
		{"zero scale", func(c *AppConfig) { c.ScaleCandidates = []float64{4, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	s.SimilarityPercentage = 1.5
	if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}

	s = DefaultSettings()
	s.OverlapThreshold = 0
	if err := s.Validate(); err != nil {
		t.Errorf("zero overlap threshold should be allowed: %v", err)
	}

	if got := DefaultSettings().BBoxRejectDistance(); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("expected reject distance 0.01, got %g", got)
	}
}

func TestStandardLayer(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DrawingName = "Plan"
	if got := cfg.StandardLayer(CategoryLegend, LegendPrintFrame); got != "Plan::Legend_PrintFrame" {
		t.Errorf("expected Plan::Legend_PrintFrame, got %s", got)
	}
}
