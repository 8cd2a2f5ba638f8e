package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

// ExtractPDFText concatenates the plain text of every page in page order.
// Pages without content are skipped. Malformed files, including ones that make
// the PDF reader panic, yield a corrupt_document failure.
func ExtractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = docx.Corrupt("unreadable pdf", fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", docx.Corrupt("unreadable pdf", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", docx.Corrupt(fmt.Sprintf("unreadable pdf page %d", i), err)
		}
		b.WriteString(pageText)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", &NoExtractableTextError{Format: FormatPDF}
	}
	return b.String(), nil
}

// PDFPageCount returns the number of pages, or 0 when the file cannot be read
func PDFPageCount(data []byte) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
