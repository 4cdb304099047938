package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// ErrNoStandards is returned when a layer standards file has no layers.
var ErrNoStandards = errors.New("layer standards file defines no layers")

// DefaultStandardsPath returns the default file path for shared layer
// standards.
func DefaultStandardsPath() string {
	return filepath.Join(DefaultConfigDir(), "standards.json")
}

// SaveLayerStandards saves layer standards to a JSON file, for sharing
// between offices.
func SaveLayerStandards(path string, standards model.LayerStandards) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(standards, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadLayerStandards loads layer standards from a JSON file.
func LoadLayerStandards(path string) (model.LayerStandards, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LayerStandards{}, err
	}

	var standards model.LayerStandards
	if err := json.Unmarshal(data, &standards); err != nil {
		return model.LayerStandards{}, err
	}
	if len(standards.Linework)+len(standards.Colors)+len(standards.Legend) == 0 {
		return model.LayerStandards{}, ErrNoStandards
	}
	return standards, nil
}

// ApplyLayerStandards loads standards from path into config and validates
// the result. The config is unchanged on error.
func ApplyLayerStandards(path string, config *model.AppConfig) error {
	standards, err := LoadLayerStandards(path)
	if err != nil {
		return err
	}
	next := *config
	next.Standards = standards
	if err := next.Validate(); err != nil {
		return err
	}
	*config = next
	return nil
}
