// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// JobRecord is one job posting in canonical form. Upstream fields pass through
// untouched; only the title, description and highlight qualifications are queried.
type JobRecord map[string]any

// Title returns job_title, falling back to title
func (j JobRecord) Title() string {
	return j.firstString("job_title", "title")
}

// Description returns job_description, falling back to description
func (j JobRecord) Description() string {
	return j.firstString("job_description", "description")
}

// Company returns employer_name, falling back to company
func (j JobRecord) Company() string {
	return j.firstString("employer_name", "company")
}

// HighlightQualifications returns job_highlights.Qualifications when it is a list.
// Non-string entries are skipped. ok is false when the field is absent or not a list.
func (j JobRecord) HighlightQualifications() (quals []string, ok bool) {
	highlights, isMap := j["job_highlights"].(map[string]any)
	if !isMap {
		return nil, false
	}
	raw, isList := highlights["Qualifications"].([]any)
	if !isList {
		return nil, false
	}
	for _, item := range raw {
		if s, isString := item.(string); isString {
			quals = append(quals, s)
		}
	}
	return quals, true
}

func (j JobRecord) firstString(keys ...string) string {
	for _, key := range keys {
		if s, ok := j[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
