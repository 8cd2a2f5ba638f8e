package pipeline

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/docx"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

// Document is the input of an extraction. The first populated source wins:
// Structured, then Data (decoded by detected format), then Text.
type Document struct {
	// Name is a filename or location, used for format detection and logs
	Name     string
	MIMEType string
	Data     []byte

	Structured *docx.StructuredDocument
	Text       string
}

// Format reports how the document will be decoded
func (d Document) Format() ingestion.Format {
	switch {
	case d.Structured != nil:
		return ingestion.FormatDOCX
	case len(d.Data) > 0:
		return ingestion.DetectFormat(d.Name, d.MIMEType, d.Data)
	}
	return ingestion.FormatText
}

// Flatten produces the prompt text of the document
func (d Document) Flatten() (string, error) {
	switch {
	case d.Structured != nil:
		return ingestion.FlattenDocument(d.Structured)
	case len(d.Data) > 0:
		return ingestion.ExtractText(d.Format(), d.Data)
	}
	text := ingestion.CleanText(d.Text)
	if strings.TrimSpace(text) == "" {
		return "", &ingestion.NoExtractableTextError{Format: ingestion.FormatText}
	}
	return text, nil
}
