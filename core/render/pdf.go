package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// PDFRenderer produces a PDF export of a processed document using gofpdf:
// title, metadata lines, body content, and a trailing page of extracted
// tables when present.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the document into PDF bytes.
func (r *PDFRenderer) Render(doc *core.ProcessedDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	title := doc.Metadata.Title
	if title == "" {
		title = "Untitled"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, title, "", "L", false)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 6, "Last modified: "+valueOr(doc.Metadata.LastModified, "Unknown"), "", "L", false)
	pdf.MultiCell(0, 6, "URL: "+valueOr(doc.Metadata.URL, "Unknown"), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	content := doc.Content
	if content == "" {
		content = "No content available"
	}
	pdf.MultiCell(0, 6, content, "", "L", false)

	if len(doc.Tables) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 10, "Tables", "", "L", false)

		for _, table := range doc.Tables {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 6, strings.Join(table.Headers, " | "), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			for _, row := range table.Data {
				pdf.MultiCell(0, 6, strings.Join(row, " | "), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
