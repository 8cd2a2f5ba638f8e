package docx

import "fmt"

// Failure reasons reported by ExtractionFailure
const (
	ReasonCorruptDocument   = "corrupt_document"
	ReasonUnsupportedFormat = "unsupported_format"
)

// ExtractionFailure is returned when a document cannot be turned into structure or text
type ExtractionFailure struct {
	Reason  string
	Message string
	Cause   error
}

func (e *ExtractionFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Cause
}

// Corrupt builds a corrupt_document failure
func Corrupt(message string, cause error) *ExtractionFailure {
	return &ExtractionFailure{Reason: ReasonCorruptDocument, Message: message, Cause: cause}
}
