// Package importer reads drawings, block libraries and layer keyword rules
// from files. Rule tables come from CSV or Excel with automatic delimiter
// detection and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a rule table import.
type ImportResult struct {
	Rules         []model.LayerRule
	BlockKeywords []string
	Errors        []string
	Warnings      []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Kind     int
	Target   int
	Keywords int
}

// Row kinds of a rule table.
const (
	KindLayer = "layer"
	KindBlock = "block"
)

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"kind":     {"kind", "type", "rule", "rule type", "category"},
	"target":   {"target", "target layer", "linework", "destination", "to"},
	"keywords": {"keywords", "keyword", "match", "matches", "contains", "pattern", "patterns"},
}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and
// pipe whose split gives the most rows with the first row's column count.
// Splits with a single column never win.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := newCSVReader(bytes.NewReader(data), delim).ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		cols := len(records[0])
		consistent := 0
		for _, row := range records {
			if len(row) == cols {
				consistent++
			}
		}
		if score := consistent*10 + cols; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Kind, Target, Keywords and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Kind: -1, Target: -1, Keywords: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "kind":
					if mapping.Kind == -1 {
						mapping.Kind = i
					}
				case "target":
					if mapping.Target == -1 {
						mapping.Target = i
					}
				case "keywords":
					if mapping.Keywords == -1 {
						mapping.Keywords = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Kind: 0, Target: 1, Keywords: 2}, false
	}
	return mapping, true
}

// parseKind normalizes a rule kind. An empty kind means a layer rule.
func parseKind(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "layer", "layers", "l":
		return KindLayer, true
	case "block", "blocks", "b":
		return KindBlock, true
	default:
		return "", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// splitKeywords splits a keyword cell on semicolons, pipes and commas.
func splitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '|' || r == ','
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportLayerRules imports keyword rules from a CSV or Excel file, chosen by
// extension.
func ImportLayerRules(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports keyword rules from a CSV file with an auto-detected
// delimiter.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	delimiter := DetectCSVDelimiter(data)
	var notes []string
	if name, ok := delimiterNames[delimiter]; ok {
		notes = append(notes, fmt.Sprintf("Detected %s delimiter", name))
	}
	return importCSV(bytes.NewReader(data), delimiter, notes)
}

var delimiterNames = map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}

// ImportLayerRulesFromReader imports keyword rules from CSV data with a
// known delimiter.
func ImportLayerRulesFromReader(r io.Reader, delimiter rune) ImportResult {
	return importCSV(r, delimiter, nil)
}

func importCSV(r io.Reader, delimiter rune, notes []string) ImportResult {
	records, err := newCSVReader(r, delimiter).ReadAll()
	switch {
	case err != nil:
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	case len(records) == 0:
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", notes)
}

// ImportExcel imports keyword rules from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	switch {
	case err != nil:
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	case len(rows) == 0:
		return ImportResult{Errors: []string{"Sheet is empty"}}
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Consecutive layer rows with the same target are merged into one rule so
// the rule order of the table is kept.
func importFromRows(rows [][]string, rowPrefix string, notes []string) ImportResult {
	result := ImportResult{Warnings: notes}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Keywords == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Keywords")
			return result
		}
	} else if _, ok := parseKind(getCell(rows[0], mapping.Kind)); !ok {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	seenBlock := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		kind, ok := parseKind(getCell(row, mapping.Kind))
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: Unknown rule kind '%s'", rowLabel, getCell(row, mapping.Kind)))
			continue
		}
		keywords := splitKeywords(getCell(row, mapping.Keywords))
		if len(keywords) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: No keywords, skipping", rowLabel))
			continue
		}

		if kind == KindBlock {
			for _, kw := range keywords {
				if key := strings.ToLower(kw); !seenBlock[key] {
					seenBlock[key] = true
					result.BlockKeywords = append(result.BlockKeywords, kw)
				}
			}
			continue
		}

		target := getCell(row, mapping.Target)
		if target == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing target layer", rowLabel))
			continue
		}
		if n := len(result.Rules); n > 0 && result.Rules[n-1].Target == target {
			result.Rules[n-1].Keywords = append(result.Rules[n-1].Keywords, keywords...)
			continue
		}
		result.Rules = append(result.Rules, model.LayerRule{Target: target, Keywords: keywords})
	}

	return result
}
