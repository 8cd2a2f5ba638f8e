package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

var (
	multiSpace = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// FlattenDocument reduces a structured document to prompt text: paragraph
// texts joined by newlines, then one line per table holding its cell texts
// separated by single spaces. Merged cells contribute their own text only.
func FlattenDocument(doc *docx.StructuredDocument) (string, error) {
	if doc == nil {
		return "", &NoExtractableTextError{Format: FormatDOCX}
	}

	lines := make([]string, 0, len(doc.Paragraphs)+len(doc.Tables))
	for _, p := range doc.Paragraphs {
		lines = append(lines, p.Text)
	}
	for _, table := range doc.Tables {
		var cells []string
		for _, row := range table.Rows {
			for _, cell := range row {
				cells = append(cells, cell.Text)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return "", &NoExtractableTextError{Format: FormatDOCX}
	}
	return text, nil
}

// CleanText normalizes loosely formatted text (plain uploads, HTML pages):
// line endings become LF, runs of horizontal whitespace collapse to one space,
// trailing spaces go, and more than one blank line in a row is squeezed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
	}
	content = strings.Join(lines, "\n")
	content = blankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
