package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata describes one ingested document
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw bytes
	Bytes     int    `json:"bytes"`
	Pages     int    `json:"pages,omitempty"`
	Chars     int    `json:"chars"`
	Words     int    `json:"words"`
}

// NewMetadata describes a document from its raw bytes and extracted text
func NewMetadata(source string, format Format, raw []byte, text string) *Metadata {
	m := &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
		Bytes:     len(raw),
		Chars:     len([]rune(text)),
		Words:     len(strings.Fields(text)),
	}
	if format == FormatPDF {
		m.Pages = PDFPageCount(raw)
	}
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
