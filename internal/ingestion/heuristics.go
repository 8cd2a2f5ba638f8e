package ingestion

import (
	"regexp"
	"strings"
)

var (
	resumeKeywords = []string{
		"skills", "experience", "education", "references", "work history",
		"objective", "summary", "portfolio", "contact", "email", "phone",
	}
	namePattern    = regexp.MustCompile(`[A-Z][a-z]+\s[A-Z][a-z]+`)
	phonePattern   = regexp.MustCompile(`\d{3}-\d{3}-\d{4}`)
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	sectionPattern = regexp.MustCompile(`(?i)(SKILLS|EDUCATION|EXPERIENCE|Work History|Portfolio|Summary|Objective)`)
)

// ResumeSignals counts the features used by LooksLikeResume
type ResumeSignals struct {
	Keywords int `json:"keywords"`
	Names    int `json:"names"`
	Phones   int `json:"phones"`
	Emails   int `json:"emails"`
	Sections int `json:"sections"`
}

// ScanResumeSignals counts résumé features in text
func ScanResumeSignals(text string) ResumeSignals {
	lower := strings.ToLower(text)
	keywords := 0
	for _, k := range resumeKeywords {
		keywords += strings.Count(lower, k)
	}
	return ResumeSignals{
		Keywords: keywords,
		Names:    len(namePattern.FindAllString(text, -1)),
		Phones:   len(phonePattern.FindAllString(text, -1)),
		Emails:   len(emailPattern.FindAllString(text, -1)),
		Sections: len(sectionPattern.FindAllString(text, -1)),
	}
}

// LooksLikeResume reports whether text has the shape of a résumé without calling
// an LLM. It requires at least three keywords, a capitalized name, a phone
// number, an email address and two section headers.
func LooksLikeResume(text string) bool {
	s := ScanResumeSignals(text)
	return s.Keywords >= 3 && s.Names >= 1 && s.Phones >= 1 && s.Emails >= 1 && s.Sections >= 2
}
