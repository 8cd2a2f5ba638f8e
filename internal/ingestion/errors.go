package ingestion

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

// ExtractionFailure is shared with the docx extractor so callers classify
// container and PDF failures the same way.
type ExtractionFailure = docx.ExtractionFailure

// ErrNoExtractableText is matched by errors.Is for every NoExtractableTextError
var ErrNoExtractableText = errors.New("no extractable text")

// NoExtractableTextError reports a document that parsed but holds no text,
// typically an image-only scan that needs OCR rather than a retry.
type NoExtractableTextError struct {
	Format Format
}

func (e *NoExtractableTextError) Error() string {
	if e.Format == "" {
		return ErrNoExtractableText.Error()
	}
	return fmt.Sprintf("%s: %s document contains no selectable text", ErrNoExtractableText, e.Format)
}

func (e *NoExtractableTextError) Is(target error) bool {
	return target == ErrNoExtractableText
}
