// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"unicode/utf8"
)

// MinQualificationLength is the shortest trimmed qualification kept in a set,
// in characters
const MinQualificationLength = 6

// QualificationSet is an ordered set of qualification strings. Membership is
// case-insensitive on the trimmed text and the first-seen spelling wins.
type QualificationSet struct {
	items []string
	seen  map[string]bool
}

// NewQualificationSet creates an empty set
func NewQualificationSet() *QualificationSet {
	return &QualificationSet{seen: make(map[string]bool)}
}

// Add inserts s unless it is too short or already present. It reports whether s was added.
func (q *QualificationSet) Add(s string) bool {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) < MinQualificationLength {
		return false
	}
	key := strings.ToLower(trimmed)
	if q.seen == nil {
		q.seen = make(map[string]bool)
	}
	if q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, trimmed)
	return true
}

// Items returns the qualifications in first-seen order
func (q *QualificationSet) Items() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of qualifications
func (q *QualificationSet) Len() int {
	return len(q.items)
}
