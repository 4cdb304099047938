package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PlanTidy/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// ReportInfo holds the data encoded into the report header's QR code.
type ReportInfo struct {
	Title     string         `json:"title"`
	Drawing   string         `json:"drawing"`
	Source    string         `json:"source,omitempty"`
	Generated string         `json:"generated"`
	Summary   map[string]int `json:"summary"`
}

// CollectReportInfo extracts the QR code payload from a report.
func CollectReportInfo(r model.Report) ReportInfo {
	return ReportInfo{
		Title:     r.Title,
		Drawing:   r.DrawingName,
		Source:    r.Source,
		Generated: r.Generated.UTC().Format("2006-01-02T15:04:05Z"),
		Summary:   r.Summary(),
	}
}

const qrSize = 22.0 // mm

// placeQR draws a QR code of the report metadata with its top right corner
// at (right, top).
func placeQR(pdf *fpdf.Fpdf, right, top float64, info ReportInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal report info: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("report_qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("report_qr", right-qrSize, top, qrSize, qrSize, false, opts, 0, "")
	return nil
}
