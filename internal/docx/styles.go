package docx

import "strings"

const defaultParagraphStyle = "Normal"

// styleTable resolves style ids to display names
type styleTable struct {
	names            map[string]string
	defaultParagraph string
}

func newStyleTable(root *node) *styleTable {
	t := &styleTable{names: make(map[string]string), defaultParagraph: defaultParagraphStyle}
	if root == nil {
		return t
	}
	for _, s := range root.children("style") {
		id, _ := s.attr("styleId")
		name := id
		if n := s.child("name"); n != nil {
			if v, ok := n.attr("val"); ok && v != "" {
				name = v
			}
		}
		name = uiStyleName(name)
		t.names[id] = name

		typ, _ := s.attr("type")
		if def, ok := s.attr("default"); ok && typ == "paragraph" && isOn(def) {
			t.defaultParagraph = name
		}
	}
	return t
}

// paragraphStyle returns the display name for a pStyle id. With no styles part
// the id itself is the best available name.
func (t *styleTable) paragraphStyle(id string) string {
	if id == "" {
		return t.defaultParagraph
	}
	if name, ok := t.names[id]; ok {
		return name
	}
	if len(t.names) == 0 {
		return id
	}
	return t.defaultParagraph
}

// runStyle returns the display name for an rStyle id, or nil when unset
func (t *styleTable) runStyle(id string) *string {
	if id == "" {
		return nil
	}
	name, ok := t.names[id]
	if !ok {
		name = id
	}
	return &name
}

// builtinNames maps lowercase names stored by Word to the names shown in its UI
var builtinNames = map[string]string{
	"caption": "Caption",
	"footer":  "Footer",
	"header":  "Header",
	"title":   "Title",
	"normal":  "Normal",
}

func uiStyleName(name string) string {
	if rest, ok := strings.CutPrefix(name, "heading "); ok {
		return "Heading " + rest
	}
	if ui, ok := builtinNames[name]; ok {
		return ui
	}
	return name
}

// isOn interprets an OOXML on/off value; an absent value means on.
func isOn(v string) bool {
	switch strings.ToLower(v) {
	case "", "1", "true", "on":
		return true
	}
	return false
}
