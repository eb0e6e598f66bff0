package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"newsbrief/internal/domain"
)

// PDF renders a summary and its sources as a simple two-part PDF
// document and returns the bytes.
func PDF(summary *domain.Summary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	// Core fonts are cp1252; model output is UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(fmt.Sprintf("Summary for: %s", summary.Query)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, tr(summary.Text), "", "L", false)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, "Sources", "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	for _, c := range summary.Citations {
		line := fmt.Sprintf("[%d] %s - %s", c.Index, c.Title, c.URL)
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
