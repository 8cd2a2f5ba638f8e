package docx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var headingPattern = regexp.MustCompile(`^Heading (\d+)$`)

// body walks the document body in order, collecting paragraphs, tables and bookmarks
func (e *extractor) body(out *StructuredDocument) error {
	return e.blocks(e.document.child("body"), out)
}

func (e *extractor) blocks(container *node, out *StructuredDocument) error {
	for i := range container.Children {
		c := &container.Children[i]
		switch c.XMLName.Local {
		case "p":
			para, err := e.paragraph(c)
			if err != nil {
				return err
			}
			out.Paragraphs = append(out.Paragraphs, para)
			out.Bookmarks = append(out.Bookmarks, bookmarks(c, para.Text)...)
		case "tbl":
			table, err := e.table(c, len(out.Tables))
			if err != nil {
				return err
			}
			out.Tables = append(out.Tables, table)
		case "sdt":
			if content := c.child("sdtContent"); content != nil {
				if err := e.blocks(content, out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *extractor) paragraph(p *node) (Paragraph, error) {
	para := Paragraph{Runs: []Run{}}

	styleID := ""
	if pPr := p.child("pPr"); pPr != nil {
		if ps := pPr.child("pStyle"); ps != nil {
			styleID, _ = ps.attr("val")
		}
		if numPr := pPr.child("numPr"); numPr != nil {
			info, err := listInfo(numPr)
			if err != nil {
				return para, err
			}
			para.ListInfo = info
		}
	}
	para.StyleName = e.styles.paragraphStyle(styleID)
	if m := headingPattern.FindStringSubmatch(para.StyleName); m != nil {
		level, err := strconv.Atoi(m[1])
		if err == nil {
			para.IsHeading = true
			para.HeadingLevel = &level
		}
	}

	e.collectRuns(p, "", &para.Runs)

	var text strings.Builder
	for _, r := range para.Runs {
		text.WriteString(r.Text)
	}
	para.Text = text.String()
	return para, nil
}

// collectRuns gathers runs beneath a paragraph-level container. hyperlink is
// the resolved target of the nearest enclosing w:hyperlink, if any.
func (e *extractor) collectRuns(container *node, hyperlink string, runs *[]Run) {
	for i := range container.Children {
		c := &container.Children[i]
		switch c.XMLName.Local {
		case "r":
			*runs = append(*runs, e.run(c, hyperlink))
		case "hyperlink":
			target := hyperlink
			if id, ok := c.attrNS(nsRelationships, "id"); ok {
				if rel, found := e.relByID[id]; found {
					target = rel.Target
				}
			}
			e.collectRuns(c, target, runs)
		case "ins", "smartTag", "fldSimple", "customXml":
			e.collectRuns(c, hyperlink, runs)
		case "sdt":
			if content := c.child("sdtContent"); content != nil {
				e.collectRuns(content, hyperlink, runs)
			}
		}
	}
}

func (e *extractor) run(r *node, hyperlink string) Run {
	run := Run{HyperlinkTarget: hyperlink}

	if rPr := r.child("rPr"); rPr != nil {
		run.Bold = toggle(rPr.child("b"))
		run.Italic = toggle(rPr.child("i"))
		if u := rPr.child("u"); u != nil {
			val, _ := u.attr("val")
			on := val != "none"
			run.Underline = &on
		}
		if rs := rPr.child("rStyle"); rs != nil {
			id, _ := rs.attr("val")
			run.StyleName = e.styles.runStyle(id)
		}
	}

	var text strings.Builder
	for i := range r.Children {
		c := &r.Children[i]
		switch c.XMLName.Local {
		case "t":
			text.WriteString(c.Content)
		case "tab", "ptab":
			text.WriteByte('\t')
		case "br", "cr":
			text.WriteByte('\n')
		case "noBreakHyphen":
			text.WriteByte('-')
		}
	}
	run.Text = text.String()
	return run
}

// toggle reads a boolean run property: nil when absent
func toggle(n *node) *bool {
	if n == nil {
		return nil
	}
	val, _ := n.attr("val")
	on := isOn(val)
	return &on
}

func listInfo(numPr *node) (*ListInfo, error) {
	info := &ListInfo{}
	if ilvl := numPr.child("ilvl"); ilvl != nil {
		v, _ := ilvl.attr("val")
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid list level %q: %w", v, err)
		}
		info.Level = level
	}
	if numID := numPr.child("numId"); numID != nil {
		v, _ := numID.attr("val")
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid list numbering id %q: %w", v, err)
		}
		info.NumID = &id
	}
	return info, nil
}

func (e *extractor) table(tbl *node, index int) (Table, error) {
	table := Table{Index: index, Rows: [][]Cell{}}
	for ri, tr := range tbl.children("tr") {
		row := []Cell{}
		for ci, tc := range tr.children("tc") {
			cell, err := e.cell(tc)
			if err != nil {
				return table, fmt.Errorf("table %d row %d cell %d: %w", index, ri, ci, err)
			}
			row = append(row, cell)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (e *extractor) cell(tc *node) (Cell, error) {
	cell := Cell{GridSpan: 1}
	if tcPr := tc.child("tcPr"); tcPr != nil {
		if gs := tcPr.child("gridSpan"); gs != nil {
			v, _ := gs.attr("val")
			span, err := strconv.Atoi(v)
			if err != nil {
				return cell, fmt.Errorf("invalid gridSpan %q: %w", v, err)
			}
			if span < 1 {
				return cell, fmt.Errorf("invalid gridSpan %d", span)
			}
			cell.GridSpan = span
		}
		if vm := tcPr.child("vMerge"); vm != nil {
			// An absent val is a continuation in OOXML
			val, ok := vm.attr("val")
			if !ok {
				val = "continue"
			}
			cell.VMerge = &val
		}
	}

	var texts []string
	for _, p := range tc.children("p") {
		para, err := e.paragraph(p)
		if err != nil {
			return cell, err
		}
		texts = append(texts, para.Text)
	}
	cell.Text = strings.Join(texts, "\n")
	return cell, nil
}

// bookmarks returns the named bookmarks started inside paragraph p
func bookmarks(p *node, paragraphText string) []Bookmark {
	var out []Bookmark
	p.walk(func(c *node) {
		if !c.is("bookmarkStart") {
			return
		}
		name, _ := c.attr("name")
		if name == "" {
			return
		}
		id, _ := c.attr("id")
		out = append(out, Bookmark{ID: id, Name: name, ParagraphText: paragraphText})
	})
	return out
}
