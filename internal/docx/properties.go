package docx

import "strings"

func (e *extractor) coreProperties() CoreProperties {
	n := e.core
	if n == nil {
		return CoreProperties{}
	}
	return CoreProperties{
		Title:          n.childText("title"),
		Subject:        n.childText("subject"),
		Creator:        n.childText("creator"),
		LastModifiedBy: n.childText("lastModifiedBy"),
		Revision:       n.childText("revision"),
		Created:        n.childText("created"),
		Modified:       n.childText("modified"),
		Category:       n.childText("category"),
		Comments:       n.childText("description"),
		Keywords:       n.childText("keywords"),
		ContentStatus:  n.childText("contentStatus"),
		Identifier:     n.childText("identifier"),
		Language:       n.childText("language"),
		Version:        n.childText("version"),
	}
}

func (e *extractor) appProperties() AppProperties {
	n := e.app
	if n == nil {
		return AppProperties{}
	}
	return AppProperties{
		Application: n.childText("Application"),
		DocSecurity: n.childText("DocSecurity"),
		Lines:       n.childText("Lines"),
		Paragraphs:  n.childText("Paragraphs"),
		Words:       n.childText("Words"),
		Characters:  n.childText("Characters"),
		Company:     n.childText("Company"),
		Pages:       n.childText("Pages"),
		TotalTime:   n.childText("TotalTime"),
	}
}

func (e *extractor) commentList() []Comment {
	out := []Comment{}
	if e.comments == nil {
		return out
	}
	for _, c := range e.comments.children("comment") {
		id, _ := c.attr("id")
		author, _ := c.attr("author")
		date, _ := c.attr("date")
		out = append(out, Comment{
			ID:     id,
			Author: author,
			Date:   date,
			Text:   strings.TrimSpace(c.textContent()),
		})
	}
	return out
}

// notes lists footnotes or endnotes that carry both an id and text.
// Separator notes have no text and are skipped.
func notes(root *node, element string) []Note {
	out := []Note{}
	if root == nil {
		return out
	}
	for _, n := range root.children(element) {
		id, _ := n.attr("id")
		text := strings.TrimSpace(n.textContent())
		if id != "" && text != "" {
			out = append(out, Note{ID: id, Text: text})
		}
	}
	return out
}
