package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

func minimalDocx(t *testing.T, body string) []byte {
	t.Helper()
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		data     []byte
		want     Format
	}{
		{name: "pdf magic wins over extension", filename: "resume.txt", data: []byte("%PDF-1.7\n..."), want: FormatPDF},
		{name: "zip magic", filename: "upload.bin", data: []byte("PK\x03\x04rest"), want: FormatDOCX},
		{name: "pdf content under a text mime", filename: "resume", mimeType: "text/plain", data: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), want: FormatPDF},
		{name: "html content under txt extension stays text", filename: "notes.txt", data: []byte("<html><body>Jane</body></html>"), want: FormatText},
		{name: "plain text ignores sniffed type for mime", mimeType: "text/markdown", data: []byte("# Jane Doe"), want: FormatText},
		{name: "mime with params", mimeType: "text/html; charset=utf-8", data: []byte("<html>"), want: FormatHTML},
		{name: "docx mime", mimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", want: FormatDOCX},
		{name: "extension", filename: "Resume.TXT", data: []byte("Jane"), want: FormatText},
		{name: "unknown", filename: "resume.odt", data: []byte("???"), want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.filename, tt.mimeType, tt.data))
		})
	}
}

func TestDetectFormat_SniffsDocxWithoutHints(t *testing.T) {
	data := minimalDocx(t, `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`)

	assert.Equal(t, FormatDOCX, DetectFormat("", "", data))
	assert.Equal(t, FormatDOCX, DetectFormat("resume.pdf", "application/pdf", data))
}

func TestExtractText_Docx(t *testing.T) {
	data := minimalDocx(t, `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go developer</w:t></w:r></w:p>`)

	text, err := ExtractText(FormatDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractText_EmptyDocx(t *testing.T) {
	data := minimalDocx(t, `<w:p/><w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>`)

	_, err := ExtractText(FormatDOCX, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoExtractableText)
}

func TestExtractText_PlainAndHTML(t *testing.T) {
	text, err := ExtractText(FormatText, []byte("Jane   Doe\r\nGo"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo", text)

	html := `<html><head><style>p{}</style><script>var x = 1;</script></head>` +
		`<body><h1>Jane Doe</h1><p>Go  developer</p><ul><li>Kafka</li></ul></body></html>`
	text, err = ExtractText(FormatHTML, []byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Go developer")
	assert.Contains(t, text, "Kafka")
	assert.NotContains(t, text, "var x")
}

func TestExtractText_Failures(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   []byte
		reason string
	}{
		{name: "corrupt pdf", format: FormatPDF, data: []byte("%PDF-1.4 garbage without xref"), reason: docx.ReasonCorruptDocument},
		{name: "corrupt docx", format: FormatDOCX, data: []byte("PK\x03\x04 truncated"), reason: docx.ReasonCorruptDocument},
		{name: "unknown format", format: FormatUnknown, data: []byte("data"), reason: docx.ReasonUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.format, tt.data)
			assert.Empty(t, text)
			var failure *ExtractionFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.reason, failure.Reason)
		})
	}
}

func TestExtractText_WhitespaceText(t *testing.T) {
	_, err := ExtractText(FormatText, []byte(" \n\t "))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoExtractableText)
}
