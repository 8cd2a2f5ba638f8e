// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MaxGapItems is the per-category cap applied to every GapAnalysisRecord list
const MaxGapItems = 8

// GapAnalysisRecord lists what a candidate is missing relative to a set of job qualifications
type GapAnalysisRecord struct {
	MissingTechnicalSkills []string `json:"missing_technical_skills"`
	MissingEducation       []string `json:"missing_education"`
	MissingCertifications  []string `json:"missing_certifications"`
	MissingExperience      []string `json:"missing_experience"`
	MissingSoftSkills      []string `json:"missing_soft_skills"`
	RecommendedActions     []string `json:"recommended_actions"`
}

// GapCategories are the JSON keys of a GapAnalysisRecord in declaration order
var GapCategories = []string{
	"missing_technical_skills",
	"missing_education",
	"missing_certifications",
	"missing_experience",
	"missing_soft_skills",
	"recommended_actions",
}

// NewGapAnalysisRecord returns a record with all categories empty.
func NewGapAnalysisRecord() *GapAnalysisRecord {
	return &GapAnalysisRecord{
		MissingTechnicalSkills: []string{},
		MissingEducation:       []string{},
		MissingCertifications:  []string{},
		MissingExperience:      []string{},
		MissingSoftSkills:      []string{},
		RecommendedActions:     []string{},
	}
}

// Category returns a pointer to the list stored under a JSON key, or nil for unknown keys.
func (g *GapAnalysisRecord) Category(key string) *[]string {
	switch key {
	case "missing_technical_skills":
		return &g.MissingTechnicalSkills
	case "missing_education":
		return &g.MissingEducation
	case "missing_certifications":
		return &g.MissingCertifications
	case "missing_experience":
		return &g.MissingExperience
	case "missing_soft_skills":
		return &g.MissingSoftSkills
	case "recommended_actions":
		return &g.RecommendedActions
	}
	return nil
}

// Truncate caps every category at MaxGapItems and replaces nil lists with empty ones.
func (g *GapAnalysisRecord) Truncate() {
	for _, key := range GapCategories {
		list := g.Category(key)
		if *list == nil {
			*list = []string{}
		}
		if len(*list) > MaxGapItems {
			*list = (*list)[:MaxGapItems]
		}
	}
}

// Total returns the number of items across all categories
func (g *GapAnalysisRecord) Total() int {
	n := 0
	for _, key := range GapCategories {
		n += len(*g.Category(key))
	}
	return n
}
