package model

import "time"

// LayerRow is one layer line of a cleanup report.
type LayerRow struct {
	Name       string  `json:"name"`
	Color      RGB     `json:"color"`
	PrintColor RGB     `json:"print_color"`
	PrintWidth float64 `json:"print_width"` // mm; NoPrint hides
	Objects    int     `json:"objects"`
}

// Report collects the results of a cleanup run for export.
type Report struct {
	Title       string              `json:"title"`
	DrawingName string              `json:"drawing_name"`
	Source      string              `json:"source,omitempty"`
	Generated   time.Time           `json:"generated"`
	Similarity  SimilarityPartition `json:"similarity,omitempty"`
	Extensions  []Extension         `json:"extensions,omitempty"`
	Overlaps    []string            `json:"overlaps,omitempty"`
	Layers      []LayerRow          `json:"layers,omitempty"`
	Legend      []LayerSpec         `json:"legend,omitempty"`
	Notes       []string            `json:"notes,omitempty"`
}

// Summary returns the headline counts of the report.
func (r Report) Summary() map[string]int {
	members := 0
	for _, g := range r.Similarity {
		members += len(g.Members)
	}
	return map[string]int{
		"block_groups":    len(r.Similarity),
		"replaced_blocks": members,
		"extended_ends":   len(r.Extensions),
		"redundant_lines": len(r.Overlaps),
		"layers":          len(r.Layers),
	}
}
