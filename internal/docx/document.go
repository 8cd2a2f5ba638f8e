// Package docx extracts a structured tree from WordprocessingML (.docx) containers:
// paragraphs with run formatting, tables with merge markers, relationships,
// comments, bookmarks, notes and document properties.
package docx

// StructuredDocument is the full extraction result for one .docx file.
// Images is always empty; embedded image extraction is not performed.
type StructuredDocument struct {
	CoreProperties CoreProperties `json:"core_properties"`
	AppProperties  AppProperties  `json:"app_properties"`
	Paragraphs     []Paragraph    `json:"paragraphs"`
	Tables         []Table        `json:"tables"`
	Images         []MediaRef     `json:"images"`
	Media          []MediaRef     `json:"media"`
	Hyperlinks     []Hyperlink    `json:"hyperlinks"`
	Comments       []Comment      `json:"comments"`
	Bookmarks      []Bookmark     `json:"bookmarks"`
	Footnotes      []Note         `json:"footnotes"`
	Endnotes       []Note         `json:"endnotes"`
}

// CoreProperties mirrors docProps/core.xml
type CoreProperties struct {
	Title          string `json:"title"`
	Subject        string `json:"subject"`
	Creator        string `json:"creator"`
	LastModifiedBy string `json:"last_modified_by"`
	Revision       string `json:"revision"`
	Created        string `json:"created"`
	Modified       string `json:"modified"`
	Category       string `json:"category"`
	Comments       string `json:"comments"`
	Keywords       string `json:"keywords"`
	ContentStatus  string `json:"content_status"`
	Identifier     string `json:"identifier"`
	Language       string `json:"language"`
	Version        string `json:"version"`
}

// AppProperties mirrors docProps/app.xml
type AppProperties struct {
	Application string `json:"application"`
	DocSecurity string `json:"doc_security"`
	Lines       string `json:"lines"`
	Paragraphs  string `json:"paragraphs"`
	Words       string `json:"words"`
	Characters  string `json:"characters"`
	Company     string `json:"company"`
	Pages       string `json:"pages"`
	TotalTime   string `json:"total_time"`
}

// Paragraph is one body paragraph
type Paragraph struct {
	Text         string    `json:"text"`
	StyleName    string    `json:"style_name"`
	IsHeading    bool      `json:"is_heading"`
	HeadingLevel *int      `json:"heading_level"`
	ListInfo     *ListInfo `json:"list_info"`
	Runs         []Run     `json:"runs"`
}

// ListInfo carries numbering properties of a list paragraph
type ListInfo struct {
	Level int  `json:"level"`
	NumID *int `json:"num_id"`
}

// Run is a span of text with uniform formatting. Nil formatting flags mean
// the run does not set the property and inherits it.
type Run struct {
	Text            string  `json:"text"`
	Bold            *bool   `json:"bold"`
	Italic          *bool   `json:"italic"`
	Underline       *bool   `json:"underline"`
	StyleName       *string `json:"style_name"`
	HyperlinkTarget string  `json:"hyperlink_target,omitempty"`
}

// Table is a body-level table in document order
type Table struct {
	Index int      `json:"index"`
	Rows  [][]Cell `json:"rows"`
}

// Cell is one w:tc element. GridSpan counts the grid columns the cell covers.
// VMerge is nil when the cell takes no part in a vertical merge, otherwise the
// marker value as written ("restart", "continue", ...).
type Cell struct {
	Text     string  `json:"text"`
	GridSpan int     `json:"grid_span"`
	VMerge   *string `json:"v_merge"`
}

// MediaRef is a non-image relationship of the main document part
type MediaRef struct {
	RelID  string `json:"rel_id"`
	Type   string `json:"type"`
	Target string `json:"target"`
}

// Hyperlink is a hyperlink relationship
type Hyperlink struct {
	RelID  string `json:"rel_id"`
	Target string `json:"target"`
}

// Comment is a reviewer comment from word/comments.xml
type Comment struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Text   string `json:"text"`
}

// Bookmark is a named bookmark and the text of the paragraph holding it
type Bookmark struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ParagraphText string `json:"paragraph_text"`
}

// Note is a footnote or endnote
type Note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
