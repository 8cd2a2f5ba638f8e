package prompts

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const resumeFile = "resume.json"

// Prompt keys in resume.json
const (
	KeyQuickExtraction  = "quick-extraction"
	KeyFullExtraction   = "full-extraction"
	KeyGapAnalysis      = "gap-analysis"
	KeyResumeValidation = "resume-validation"
)

const (
	// MaxQualifications caps the qualifications embedded in a gap-analysis
	// prompt. Entries past the cap are dropped without notice.
	MaxQualifications = 50
	// ValidationExcerptChars is how much résumé text the validation prompt sees
	ValidationExcerptChars = 3000
)

// BuildQuickExtractionPrompt asks for the flat record (name, email, phone,
// location, skills, education, experience, projects).
func BuildQuickExtractionPrompt(resumeText string) string {
	return Format(MustGet(resumeFile, KeyQuickExtraction), map[string]string{
		"ResumeText": resumeText,
	})
}

// BuildFullExtractionPrompt asks for the richer personal_info/summary variant
func BuildFullExtractionPrompt(resumeText string) string {
	return Format(MustGet(resumeFile, KeyFullExtraction), map[string]string{
		"ResumeText": resumeText,
	})
}

// BuildGapAnalysisPrompt embeds the résumé and at most MaxQualifications
// qualifications, one "- " line each.
func BuildGapAnalysisPrompt(resumeText string, qualifications []string) string {
	if len(qualifications) > MaxQualifications {
		qualifications = qualifications[:MaxQualifications]
	}
	lines := make([]string, len(qualifications))
	for i, q := range qualifications {
		lines[i] = "- " + q
	}
	return Format(MustGet(resumeFile, KeyGapAnalysis), map[string]string{
		"ResumeText":     resumeText,
		"Qualifications": strings.Join(lines, "\n"),
		"MaxItems":       strconv.Itoa(types.MaxGapItems),
	})
}

// BuildResumeValidationPrompt asks for a YES/NO verdict on the first
// ValidationExcerptChars characters of text.
func BuildResumeValidationPrompt(resumeText string) string {
	return Format(MustGet(resumeFile, KeyResumeValidation), map[string]string{
		"ResumeText": truncateRunes(resumeText, ValidationExcerptChars),
	})
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
