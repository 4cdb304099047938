// Package export writes cleaned drawings and cleanup reports to DXF, Excel
// and PDF files.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// ExportReportPDF generates a PDF cleanup report: a header with a QR code
// of the report metadata, the headline counts, the color legend with print
// widths, then one table per result.
func ExportReportPDF(path string, report model.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	if err := renderHeader(pdf, report); err != nil {
		return err
	}
	y := marginTop + headerHeight + 16
	y = renderSummary(pdf, report, y)
	y = renderLegend(pdf, report.Legend, y+4)

	var rows [][]string
	for _, g := range report.Similarity {
		members := "-"
		if len(g.Members) > 0 {
			members = fmt.Sprintf("%v", g.Members)
		}
		rows = append(rows, []string{g.Representative, fmt.Sprintf("%d", len(g.Members)), members})
	}
	y = renderTable(pdf, "Similar Blocks", []string{"Representative", "Similar", "Members"}, []float64{55, 20, 105}, rows, y+4)

	rows = nil
	for _, e := range report.Extensions {
		rows = append(rows, []string{
			e.CurveID,
			e.End.String(),
			fmt.Sprintf("(%.3f, %.3f)", e.From.X, e.From.Y),
			fmt.Sprintf("(%.3f, %.3f)", e.To.X, e.To.Y),
		})
	}
	y = renderTable(pdf, "Extended Curve Ends", []string{"Curve", "End", "From", "To"}, []float64{70, 20, 45, 45}, rows, y+4)

	rows = nil
	for _, id := range report.Overlaps {
		rows = append(rows, []string{id})
	}
	y = renderTable(pdf, "Redundant Lines", []string{"Curve"}, []float64{180}, rows, y+4)

	rows = nil
	for _, l := range report.Layers {
		rows = append(rows, []string{l.Name, l.PrintColor.Hex(), formatWidth(l.PrintWidth), fmt.Sprintf("%d", l.Objects)})
	}
	y = renderTable(pdf, "Layers", []string{"Layer", "Print color", "Print width", "Objects"}, []float64{100, 30, 30, 20}, rows, y+4)

	if len(report.Notes) > 0 {
		y = ensureSpace(pdf, y, 14)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y+4)
		pdf.CellFormat(100, 7, "Notes", "", 0, "L", false, 0, "")
		y += 13
		pdf.SetFont("Helvetica", "", 9)
		for _, n := range report.Notes {
			y = ensureSpace(pdf, y, 5)
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(contentWidth-5, 5, "- "+n, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	renderFooter(pdf)
	return pdf.OutputFileAndClose(path)
}

func renderHeader(pdf *fpdf.Fpdf, report model.Report) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := report.Title
	if title == "" {
		title = "Drawing Cleanup Report"
	}
	pdf.CellFormat(contentWidth-30, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(contentWidth-30, 5, "Drawing: "+report.DrawingName, "", 0, "L", false, 0, "")
	pdf.SetXY(marginLeft, marginTop+headerHeight+5)
	pdf.CellFormat(contentWidth-30, 5, "Generated: "+report.Generated.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")

	if err := placeQR(pdf, pageWidth-marginRight, marginTop, CollectReportInfo(report)); err != nil {
		return err
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+12, pageWidth-marginRight, marginTop+headerHeight+12)
	return nil
}

func renderSummary(pdf *fpdf.Fpdf, report model.Report, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Summary", "", 0, "L", false, 0, "")
	y += 9

	summary := report.Summary()
	items := []struct {
		label string
		key   string
	}{
		{"Block groups", "block_groups"},
		{"Replaced blocks", "replaced_blocks"},
		{"Extended curve ends", "extended_ends"},
		{"Redundant lines", "redundant_lines"},
		{"Layers", "layers"},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", summary[item.key]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

// renderLegend draws one swatch per color layer, wrapping into columns.
func renderLegend(pdf *fpdf.Fpdf, legend []model.LayerSpec, y float64) float64 {
	if len(legend) == 0 {
		return y
	}
	y = ensureSpace(pdf, y, 16)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Color Legend", "", 0, "L", false, 0, "")
	y += 9

	const colWidth = contentWidth / 2
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	for i, spec := range legend {
		col := i % 2
		if col == 0 && i > 0 {
			y += 5
		}
		y = ensureSpace(pdf, y, 5)
		x := marginLeft + float64(col)*colWidth

		c := spec.DisplayColor
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(x, y+0.5, 4, 4, "FD")

		label := fmt.Sprintf("%s (%s)", spec.Name, formatWidth(spec.PrintWidthMM()))
		pdf.SetXY(x+6, y)
		pdf.CellFormat(colWidth-8, 5, label, "", 0, "L", false, 0, "")
	}
	return y + 5
}

// renderTable draws a titled table, continuing on new pages as needed. An
// empty table is reported as "None".
func renderTable(pdf *fpdf.Fpdf, title string, headers []string, widths []float64, rows [][]string, y float64) float64 {
	y = ensureSpace(pdf, y, 9+2*rowHeight)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 5, "None", "", 0, "L", false, 0, "")
		return y + 5
	}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		y += rowHeight
		pdf.SetFont("Helvetica", "", 8)
	}
	drawHeader()

	for r, row := range rows {
		if y+rowHeight > pageHeight-marginBottom-5 {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}
		if r%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for i, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[i], rowHeight, fit(pdf, cell, widths[i]-2), "1", 0, "L", true, 0, "")
			x += widths[i]
		}
		y += rowHeight
	}
	return y
}

// ensureSpace starts a new page when less than need mm are left.
func ensureSpace(pdf *fpdf.Fpdf, y, need float64) float64 {
	if y+need > pageHeight-marginBottom-5 {
		pdf.AddPage()
		return marginTop
	}
	return y
}

// fit truncates s with an ellipsis to the given width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func formatWidth(mm float64) string {
	switch {
	case mm == model.NoPrint:
		return "no print"
	case mm == 0:
		return "default"
	default:
		return fmt.Sprintf("%.3f mm", mm)
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by PlanTidy - Drawing Cleanup", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
