package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/format"
)

// Page geometry in millimetres.
const (
	pdfMargin    = 15.0
	pdfRowHeight = 6.5
	pdfFontSize  = 9.0
)

// PDFRenderer renders the report as an A4 document. The core PDF fonts
// cover cp1252 only, so section icons are left out.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the headlines and every section table.
func (r *PDFRenderer) Render(report core.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(DocumentTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(Heading), "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Generated: "+report.GeneratedAt.Format(TimestampLayout), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	renderHeading(pdf, "Headlines")
	pdf.SetFont("Helvetica", "", 10)
	for _, h := range report.Headlines.Value {
		pdf.MultiCell(0, 5, tr("- "+h), "", "L", false)
	}
	if report.Headlines.Degraded {
		renderReason(pdf, tr(report.Headlines.Reason))
	}

	for _, s := range report.Sections {
		pdf.Ln(4)
		renderHeading(pdf, tr(s.Title))
		if s.Table.Degraded || s.Table.Value.Empty() {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, "Data unavailable", "", "L", false)
			renderReason(pdf, tr(s.Table.Reason))
			continue
		}
		renderTable(pdf, tr, s.Table.Value, s.Colorize)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, text, "", "L", false)
	pdf.Ln(1)
}

func renderReason(pdf *gofpdf.Fpdf, reason string) {
	if reason == "" {
		return
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.MultiCell(0, 4, reason, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
}

// renderTable draws equal-width columns; cell text that does not fit is cut.
func renderTable(pdf *gofpdf.Fpdf, tr func(string) string, t core.Table, colorize bool) {
	cols := t.Columns()
	pageW, _ := pdf.GetPageSize()
	w := (pageW - 2*pdfMargin) / float64(len(cols))

	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.SetFillColor(22, 58, 95)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range cols {
		pdf.CellFormat(w, pdfRowHeight, fit(pdf, tr(c), w), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	pdf.SetFillColor(248, 251, 255)
	for i, row := range t.Rows() {
		for _, cell := range row {
			setCellColor(pdf, cell, colorize)
			pdf.CellFormat(w, pdfRowHeight, fit(pdf, tr(cell), w), "1", 0, "L", i%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)
}

func setCellColor(pdf *gofpdf.Fpdf, cell string, colorize bool) {
	class := ""
	if colorize {
		class = format.Class(cell)
	}
	switch class {
	case format.NegativeClass:
		pdf.SetTextColor(214, 39, 40)
	case format.PositiveClass:
		pdf.SetTextColor(44, 160, 44)
	default:
		pdf.SetTextColor(0, 0, 0)
	}
}

// fit shortens s until it fits in width w, leaving room for cell padding.
func fit(pdf *gofpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []byte(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"..") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + ".."
}
