package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

// blockSelectors end a line when converting HTML to text
const blockSelectors = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article, header, footer"

// HTMLText converts an HTML page (an online résumé or a job posting) to clean
// text. Scripts, styles and navigation chrome are dropped.
func HTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", docx.Corrupt("unreadable html", fmt.Errorf("parse html: %w", err))
	}

	doc.Find("script, style, noscript, nav, iframe, svg").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return CleanText(strings.TrimSpace(root.Text())), nil
}
