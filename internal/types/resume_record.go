// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeRecord is the canonical extracted résumé. After coercion every field is
// present: strings default to "" and lists to empty slices, never null.
type ResumeRecord struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Location       string            `json:"location"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`
	Languages      []string          `json:"languages"`
}

// EducationEntry is one degree or program
type EducationEntry struct {
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	School         string `json:"school"`
	GraduationYear string `json:"graduation_year"`
	Details        string `json:"details"`
}

// ExperienceEntry is one position held
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ProjectEntry is one personal or professional project
type ProjectEntry struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies"`
	Description  string   `json:"description"`
}

// NewResumeRecord returns a record with every list initialized to empty.
func NewResumeRecord() *ResumeRecord {
	return &ResumeRecord{
		Skills:         []string{},
		Education:      []EducationEntry{},
		Experience:     []ExperienceEntry{},
		Projects:       []ProjectEntry{},
		Certifications: []string{},
		Languages:      []string{},
	}
}
