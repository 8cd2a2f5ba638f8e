// Package schemas holds the JSON Schemas of the records produced by the analyzer.
package schemas

import "embed"

// Schema file names
const (
	ResumeRecord = "resume_record.schema.json"
	GapAnalysis  = "gap_analysis.schema.json"
)

// Files contains every *.schema.json in this directory
//
//go:embed *.schema.json
var Files embed.FS
