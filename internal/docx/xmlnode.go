package docx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Namespace URIs used to disambiguate attributes that share a local name.
const (
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// node is a generic XML element. Matching is done on local names so both
// transitional and strict OOXML namespaces are accepted.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func parseXML(data []byte) (*node, error) {
	var root node
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

func (n *node) is(local string) bool {
	return n.XMLName.Local == local
}

func (n *node) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) attrNS(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value, true
		}
	}
	return n.attr(local)
}

func (n *node) child(local string) *node {
	for i := range n.Children {
		if n.Children[i].is(local) {
			return &n.Children[i]
		}
	}
	return nil
}

func (n *node) children(local string) []*node {
	var out []*node
	for i := range n.Children {
		if n.Children[i].is(local) {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// walk visits n's descendants depth-first in document order
func (n *node) walk(visit func(*node)) {
	for i := range n.Children {
		visit(&n.Children[i])
		n.Children[i].walk(visit)
	}
}

// textContent concatenates every w:t descendant
func (n *node) textContent() string {
	var b strings.Builder
	n.walk(func(c *node) {
		if c.is("t") {
			b.WriteString(c.Content)
		}
	})
	return b.String()
}

// childText returns the trimmed character data of the named child, or "".
func (n *node) childText(local string) string {
	if c := n.child(local); c != nil {
		return strings.TrimSpace(c.Content)
	}
	return ""
}
