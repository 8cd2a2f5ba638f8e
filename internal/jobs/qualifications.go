package jobs

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// QualificationKeywords are scanned for, in order, in each job description
var QualificationKeywords = []string{
	"bachelor", "master", "degree", "certification", "certified",
	"experience", "years", "knowledge of", "proficiency in",
	"skilled in", "familiar with", "expertise in",
}

// minSentenceLength is exclusive and counted in characters
const minSentenceLength = 10

// AggregateQualifications collects qualification strings from jobs.
//
// Each job contributes every entry of job_highlights.Qualifications when that
// field is a list, and then, for each keyword found in its description, the
// first period-delimited sentence that contains the keyword and is longer
// than 10 characters. The result is deduplicated case-insensitively in
// first-seen order and entries shorter than 6 characters are dropped.
func AggregateQualifications(jobs []types.JobRecord) *types.QualificationSet {
	set := types.NewQualificationSet()
	for _, job := range jobs {
		if quals, ok := job.HighlightQualifications(); ok {
			for _, q := range quals {
				set.Add(q)
			}
		}
		for _, sentence := range DescriptionQualifications(job.Description()) {
			set.Add(sentence)
		}
	}
	logging.L().Debug().Int("jobs", len(jobs)).Int("qualifications", set.Len()).Msg("aggregated qualifications")
	return set
}

// DescriptionQualifications returns at most one sentence per keyword from a
// free-text description, in keyword order. Sentences are not deduplicated.
func DescriptionQualifications(description string) []string {
	if description == "" {
		return nil
	}
	lower := strings.ToLower(description)
	var sentences []string
	var out []string
	for _, keyword := range QualificationKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		if sentences == nil {
			sentences = strings.Split(description, ".")
		}
		for _, sentence := range sentences {
			trimmed := strings.TrimSpace(sentence)
			if strings.Contains(strings.ToLower(sentence), keyword) && utf8.RuneCountInString(trimmed) > minSentenceLength {
				out = append(out, trimmed)
				break
			}
		}
	}
	return out
}
