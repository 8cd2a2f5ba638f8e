package ingestion

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

// Format identifies how a document's bytes are decoded into text
type Format string

// Supported document formats
const (
	FormatUnknown Format = ""
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatText    Format = "text"
	FormatHTML    Format = "html"
)

// sniffedFormats lists the container types trusted from content. Text-like
// sniffs are ignored so the declared type or extension can pick text or html.
// Any zip is handed to the DOCX reader, which reports non-Word archives as
// corrupt.
var sniffedFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/zip": FormatDOCX,
}

var mimeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"text/plain":            FormatText,
	"text/markdown":         FormatText,
	"text/html":             FormatHTML,
	"application/xhtml+xml": FormatHTML,
}

var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".txt":  FormatText,
	".md":   FormatText,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// DetectFormat picks a format from the sniffed content type, then the declared
// MIME type, then the file extension.
func DetectFormat(filename, mimeType string, data []byte) Format {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if f, ok := sniffedFormats[m.String()]; ok {
			return f
		}
	}
	if mimeType != "" {
		if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
			if f, ok := mimeFormats[mediaType]; ok {
				return f
			}
		}
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(filename))]; ok {
		return f
	}
	return FormatUnknown
}

// ExtractText decodes a document into prompt text. It returns an
// ExtractionFailure for unreadable input and a NoExtractableTextError when the
// document decodes to nothing but whitespace.
func ExtractText(format Format, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = ExtractPDFText(data)
	case FormatDOCX:
		var doc *docx.StructuredDocument
		doc, err = docx.Extract(data)
		if err != nil {
			return "", err
		}
		return FlattenDocument(doc)
	case FormatText:
		text = CleanText(string(data))
	case FormatHTML:
		text, err = HTMLText(data)
	default:
		return "", &ExtractionFailure{Reason: docx.ReasonUnsupportedFormat, Message: "unrecognized document format"}
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &NoExtractableTextError{Format: format}
	}
	return text, nil
}
