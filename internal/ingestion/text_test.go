package ingestion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

func TestFlattenDocument(t *testing.T) {
	restart := "restart"
	doc := &docx.StructuredDocument{
		Paragraphs: []docx.Paragraph{
			{Text: "Jane Doe"},
			{Text: "Backend engineer"},
			{Text: ""},
		},
		Tables: []docx.Table{
			{Rows: [][]docx.Cell{
				{{Text: "Go", GridSpan: 1}, {Text: "Python", GridSpan: 2, VMerge: &restart}},
				{{Text: "Kafka", GridSpan: 1}, {Text: "", GridSpan: 1}},
			}},
			{Rows: [][]docx.Cell{{{Text: "BSc Computer Science", GridSpan: 1}}}},
		},
	}

	text, err := FlattenDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend engineer\n\nGo Python Kafka \nBSc Computer Science", text)
}

func TestFlattenDocument_NoText(t *testing.T) {
	tests := []struct {
		name string
		doc  *docx.StructuredDocument
	}{
		{name: "nil document", doc: nil},
		{name: "no content", doc: &docx.StructuredDocument{}},
		{name: "whitespace only", doc: &docx.StructuredDocument{
			Paragraphs: []docx.Paragraph{{Text: "  "}, {Text: "\t"}},
			Tables:     []docx.Table{{Rows: [][]docx.Cell{{{Text: " "}}}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := FlattenDocument(tt.doc)
			assert.Empty(t, text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoExtractableText))

			var noText *NoExtractableTextError
			require.ErrorAs(t, err, &noText)
			assert.Equal(t, FormatDOCX, noText.Format)
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "crlf", input: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "collapse spaces", input: "Senior   Go\t\tEngineer  ", want: "Senior Go Engineer"},
		{name: "squeeze blank lines", input: "Skills\n\n\n\n\nGo", want: "Skills\n\nGo"},
		{name: "trim", input: "\n\n  Jane Doe  \n\n", want: "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
