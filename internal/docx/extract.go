package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Package part names
const (
	partDocument  = "word/document.xml"
	partRels      = "word/_rels/document.xml.rels"
	partStyles    = "word/styles.xml"
	partComments  = "word/comments.xml"
	partFootnotes = "word/footnotes.xml"
	partEndnotes  = "word/endnotes.xml"
	partCore      = "docProps/core.xml"
	partApp       = "docProps/app.xml"
)

// Extract parses a .docx file held in memory
func Extract(data []byte) (*StructuredDocument, error) {
	return ExtractReader(bytes.NewReader(data), int64(len(data)))
}

// ExtractReader parses a .docx container. Any archive or XML failure yields a
// corrupt_document ExtractionFailure and no partial output.
func ExtractReader(r io.ReaderAt, size int64) (*StructuredDocument, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, Corrupt("cannot open docx container", err)
	}
	p := &parts{files: make(map[string]*zip.File, len(archive.File))}
	for _, f := range archive.File {
		p.files[f.Name] = f
	}

	e := &extractor{}
	if err := e.load(p); err != nil {
		return nil, asFailure(err)
	}
	doc, err := e.build()
	if err != nil {
		return nil, asFailure(err)
	}
	return doc, nil
}

func asFailure(err error) *ExtractionFailure {
	var failure *ExtractionFailure
	if errors.As(err, &failure) {
		return failure
	}
	return Corrupt("malformed document body", err)
}

type parts struct {
	files map[string]*zip.File
}

// read returns the named part, or nil when the archive does not contain it
func (p *parts) read(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// readXML parses an optional part; a missing part yields a nil node
func (p *parts) readXML(name string) (*node, error) {
	data, err := p.read(name)
	if err != nil || data == nil {
		return nil, err
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, Corrupt("malformed "+name, err)
	}
	return root, nil
}

// extractor holds the parsed parts of one package
type extractor struct {
	document  *node
	rels      []relationship
	relByID   map[string]relationship
	styles    *styleTable
	comments  *node
	footnotes *node
	endnotes  *node
	core      *node
	app       *node
}

type relationship struct {
	ID     string
	Type   string
	Target string
}

func (e *extractor) load(p *parts) error {
	documentXML, err := p.read(partDocument)
	if err != nil {
		return Corrupt("cannot read "+partDocument, err)
	}
	if len(bytes.TrimSpace(documentXML)) == 0 {
		return Corrupt("missing "+partDocument, nil)
	}
	doc, err := parseXML(documentXML)
	if err != nil {
		return Corrupt("malformed "+partDocument, err)
	}
	if doc.child("body") == nil {
		return Corrupt(partDocument+" has no body", nil)
	}
	e.document = doc

	relsRoot, err := p.readXML(partRels)
	if err != nil {
		return err
	}
	e.loadRelationships(relsRoot)

	stylesRoot, err := p.readXML(partStyles)
	if err != nil {
		return err
	}
	e.styles = newStyleTable(stylesRoot)

	if e.comments, err = p.readXML(partComments); err != nil {
		return err
	}
	if e.footnotes, err = p.readXML(partFootnotes); err != nil {
		return err
	}
	if e.endnotes, err = p.readXML(partEndnotes); err != nil {
		return err
	}
	if e.core, err = p.readXML(partCore); err != nil {
		return err
	}
	if e.app, err = p.readXML(partApp); err != nil {
		return err
	}
	return nil
}

func (e *extractor) loadRelationships(root *node) {
	e.relByID = make(map[string]relationship)
	if root == nil {
		return
	}
	for _, r := range root.children("Relationship") {
		id, _ := r.attr("Id")
		typ, _ := r.attr("Type")
		target, _ := r.attr("Target")
		rel := relationship{ID: id, Type: typ, Target: target}
		e.rels = append(e.rels, rel)
		e.relByID[id] = rel
	}
}

func (e *extractor) build() (*StructuredDocument, error) {
	out := &StructuredDocument{
		CoreProperties: e.coreProperties(),
		AppProperties:  e.appProperties(),
		Paragraphs:     []Paragraph{},
		Tables:         []Table{},
		Images:         []MediaRef{},
		Media:          []MediaRef{},
		Hyperlinks:     []Hyperlink{},
		Bookmarks:      []Bookmark{},
	}

	if err := e.body(out); err != nil {
		return nil, err
	}

	for _, rel := range e.rels {
		if rel.Type != relTypeImage {
			out.Media = append(out.Media, MediaRef{RelID: rel.ID, Type: rel.Type, Target: rel.Target})
		}
		if rel.Type == relTypeHyperlink {
			out.Hyperlinks = append(out.Hyperlinks, Hyperlink{RelID: rel.ID, Target: rel.Target})
		}
	}

	out.Comments = e.commentList()
	out.Footnotes = notes(e.footnotes, "footnote")
	out.Endnotes = notes(e.endnotes, "endnote")
	return out, nil
}
