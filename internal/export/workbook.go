package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary    = "Summary"
	SheetSimilarity = "Similarity"
	SheetExtensions = "Extensions"
	SheetOverlaps   = "Overlaps"
	SheetLayers     = "Layers"
)

// ExportWorkbook writes the report as an Excel workbook with one sheet per
// result table.
func ExportWorkbook(path string, report model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("workbook: %w", err)
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetSummary, []interface{}{"Item", "Value"}, summaryRows(report)},
		{SheetSimilarity, []interface{}{"Representative", "Similar block"}, similarityRows(report.Similarity)},
		{SheetExtensions, []interface{}{"Curve", "End", "From X", "From Y", "To X", "To Y"}, extensionRows(report.Extensions)},
		{SheetOverlaps, []interface{}{"Redundant curve"}, overlapRows(report.Overlaps)},
		{SheetLayers, []interface{}{"Layer", "Color", "Print color", "Print width (mm)", "Objects"}, layerRows(report.Layers)},
	}

	for _, s := range sheets {
		if s.name != SheetSummary {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("workbook sheet %s: %w", s.name, err)
			}
		}
		if err := writeTable(f, s.name, header, s.header, s.rows); err != nil {
			return fmt.Errorf("workbook sheet %s: %w", s.name, err)
		}
	}

	return f.SaveAs(path)
}

func writeTable(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func summaryRows(r model.Report) [][]interface{} {
	rows := [][]interface{}{
		{"Title", r.Title},
		{"Drawing", r.DrawingName},
		{"Source", r.Source},
		{"Generated", r.Generated.Format("2006-01-02 15:04")},
	}
	summary := r.Summary()
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []interface{}{summaryLabel(k), summary[k]})
	}
	for _, n := range r.Notes {
		rows = append(rows, []interface{}{"Note", n})
	}
	return rows
}

// summaryLabel turns a summary key such as "block_groups" into "Block groups".
func summaryLabel(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func similarityRows(p model.SimilarityPartition) [][]interface{} {
	var rows [][]interface{}
	for _, g := range p {
		if len(g.Members) == 0 {
			rows = append(rows, []interface{}{g.Representative, ""})
			continue
		}
		for _, m := range g.Members {
			rows = append(rows, []interface{}{g.Representative, m})
		}
	}
	return rows
}

func extensionRows(exts []model.Extension) [][]interface{} {
	rows := make([][]interface{}, 0, len(exts))
	for _, e := range exts {
		rows = append(rows, []interface{}{e.CurveID, e.End.String(), e.From.X, e.From.Y, e.To.X, e.To.Y})
	}
	return rows
}

func overlapRows(ids []string) [][]interface{} {
	rows := make([][]interface{}, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []interface{}{id})
	}
	return rows
}

func layerRows(layers []model.LayerRow) [][]interface{} {
	rows := make([][]interface{}, 0, len(layers))
	for _, l := range layers {
		width := interface{}(l.PrintWidth)
		if l.PrintWidth == model.NoPrint {
			width = "No print"
		}
		rows = append(rows, []interface{}{l.Name, l.Color.Hex(), l.PrintColor.Hex(), width, l.Objects})
	}
	return rows
}
