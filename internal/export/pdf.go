package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.DocumentExporter = (*PDFExporter)(nil)
	_ domain.Document         = (*pdfDocument)(nil)
)

// PDFExporter draws documents with fpdf on A4 pages measured in points.
type PDFExporter struct {
	font string
}

// NewPDFExporter creates an exporter using the built-in Helvetica font.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{font: "Helvetica"}
}

// NewDocument starts a document with its first page already added.
func (e *PDFExporter) NewDocument() (domain.Document, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont(e.font, "", 12)
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportUnavailable, err)
	}
	return &pdfDocument{
		pdf: pdf,
		// Core fonts are cp1252; recipe text is UTF-8.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

type pdfDocument struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *pdfDocument) SetFontSize(pt float64) { d.pdf.SetFontSize(pt) }

func (d *pdfDocument) Text(x, y float64, s string) { d.pdf.Text(x, y, d.tr(s)) }

func (d *pdfDocument) AddPage() { d.pdf.AddPage() }

func (d *pdfDocument) Output(w io.Writer) error { return d.pdf.Output(w) }
