// internal/forms/pdf.go
package forms

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	commonerrors "nyaysetu/internal/common/errors"
)

const (
	pdfMargin     = 15.0 // mm
	pdfLineHeight = 4.5  // mm, fits Helvetica 10pt
	pdfWrapWidth  = 110  // characters per line before forced wrap
)

// RenderPDF writes the form document as an A4 PDF. The layout is a plain
// monospaced-style dump of the text form so the PDF matches the text output
// line for line.
func RenderPDF(w io.Writer, formType, formText string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s - NyaySetu", formType), false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	for _, line := range strings.Split(formText, "\n") {
		for _, segment := range wrapLine(line, pdfWrapWidth) {
			pdf.CellFormat(0, pdfLineHeight, segment, "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return &commonerrors.StandardError{
			Code:      commonerrors.ErrCodePDFRenderFailed,
			Message:   "PDF rendering failed",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}
	return nil
}

// wrapLine splits a line into segments of at most width runes. Slicing runes
// rather than bytes keeps multi-byte characters in response values intact.
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}
	segments := make([]string, 0, len(runes)/width+1)
	for len(runes) > width {
		segments = append(segments, string(runes[:width]))
		runes = runes[width:]
	}
	return append(segments, string(runes))
}
