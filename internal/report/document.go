// Package report assembles the paginated PDF report.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// TextStyle selects font and alignment for a block of text.
type TextStyle int

// Text styles used by the report layout.
const (
	Body TextStyle = iota
	CoverTitle
	CoverCompany
	CoverSubtitle
	Centered
	Caption
)

// Document is the page-assembly contract the Builder writes to.
type Document interface {
	AddPage()
	AddTitle(text string)
	AddText(text string, style TextStyle)
	AddSpace(height float64)
	AddImage(name string, png []byte, x, width float64) error
	Render() ([]byte, error)
}

// NewDocumentFunc creates an empty document stamped with its generation time.
type NewDocumentFunc func(generatedAt time.Time) Document

// Header lines printed on every page.
const (
	HeaderTitle    = "RELATORIO FINANCEIRO - DASHBOARD"
	generatedFmt   = "02/01/2006 15:04"
	bodyLineHeight = 8
)

// PDFDocument is the fpdf implementation of Document on A4 portrait pages.
type PDFDocument struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewPDFDocument creates a PDFDocument. It satisfies NewDocumentFunc.
func NewPDFDocument(generatedAt time.Time) Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, HeaderTitle, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "I", 12)
		pdf.CellFormat(0, 10, "Gerado em: "+generatedAt.Format(generatedFmt), "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})

	return &PDFDocument{pdf: pdf, tr: tr}
}

// AddPage starts a new page.
func (d *PDFDocument) AddPage() {
	d.pdf.AddPage()
}

// AddTitle writes a shaded chapter title.
func (d *PDFDocument) AddTitle(text string) {
	d.pdf.SetFont("Arial", "B", 14)
	d.pdf.SetFillColor(200, 220, 255)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "L", true, 0, "")
	d.pdf.Ln(5)
}

// AddText writes text in the given style.
func (d *PDFDocument) AddText(text string, style TextStyle) {
	text = d.tr(text)
	switch style {
	case CoverTitle:
		d.pdf.SetFont("Arial", "B", 20)
		d.pdf.CellFormat(0, 40, text, "", 1, "C", false, 0, "")
	case CoverCompany:
		d.pdf.SetFont("Arial", "B", 16)
		d.pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
		d.pdf.Ln(5)
	case CoverSubtitle:
		d.pdf.SetFont("Arial", "I", 14)
		d.pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
	case Centered:
		d.pdf.SetFont("Arial", "", 12)
		d.pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
	case Caption:
		d.pdf.SetFont("Arial", "B", 12)
		d.pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
	default:
		d.pdf.SetFont("Arial", "", 12)
		d.pdf.MultiCell(0, bodyLineHeight, text, "", "L", false)
		d.pdf.Ln(-1)
	}
}

// AddSpace moves the cursor down by height millimetres.
func (d *PDFDocument) AddSpace(height float64) {
	d.pdf.Ln(height)
}

// AddImage places a PNG at x with the given width, keeping its aspect ratio,
// and advances the cursor below it.
func (d *PDFDocument) AddImage(name string, png []byte, x, width float64) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if err := d.pdf.Error(); err != nil {
		d.pdf.ClearError()
		return fmt.Errorf("failed to register image %s: %w", name, err)
	}
	d.pdf.ImageOptions(name, x, 0, width, 0, true, opts, 0, "")
	return nil
}

// Render serializes the document.
func (d *PDFDocument) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
