package formatter

import (
	"bytes"
	"os"
	"strings"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path for `go run` from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	pdfFallbackFont = "Arial"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

// pdfWriter keeps the font and text translation for one document
type pdfWriter struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func newPDFWriter() *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	w := &pdfWriter{pdf: pdf, font: pdfFallbackFont}

	if fontPath := resolveFontPath(); fontPath != "" {
		// Register regular and bold styles under the same family name
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		w.font = pdfFontName
		w.tr = func(s string) string { return s }
	} else {
		// Core fonts only cover cp1252
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return w
}

func (w *pdfWriter) heading(text string, size float64) {
	w.pdf.SetFont(w.font, "B", size)
	w.pdf.MultiCell(0, size*0.5, w.tr(text), "", "", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) paragraph(text string) {
	w.pdf.SetFont(w.font, "", 11)
	_, lineHeight := w.pdf.GetFontSize()
	w.pdf.MultiCell(0, lineHeight*1.5, w.tr(text), "", "", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	w.heading(title, 12)
	for _, item := range items {
		w.paragraph("- " + item)
	}
}

func (mf *PDFFormatter) Format(ev *entity.Evaluation) ([]byte, error) {
	r := buildReport(ev)
	w := newPDFWriter()

	w.heading(r.Title, 20)
	w.paragraph(strings.TrimSpace(r.Idea))
	w.heading("Overall score: "+r.OverallScore, 14)
	if r.OverallAssessment != "" {
		w.paragraph(r.OverallAssessment)
	}

	for _, s := range r.Sections {
		w.heading(s.Title+": "+s.Score, 16)
		w.paragraph(s.Reasoning)
		w.list("Strengths", s.Strengths)
		w.list("Weaknesses", s.Weaknesses)
		w.list("Recommendations", s.Recommendations)
	}

	if r.Footer != "" {
		w.pdf.Ln(4)
		w.paragraph(r.Footer)
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
