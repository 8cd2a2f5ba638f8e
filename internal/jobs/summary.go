package jobs

import "github.com/jonathan/resume-analyzer/internal/types"

const notAvailable = "N/A"

// Summary is a short digest of one job posting
type Summary struct {
	Title      string         `json:"title"`
	Company    string         `json:"company"`
	Highlights map[string]any `json:"highlights"`
}

// Summaries digests the first n jobs (all of them when n <= 0)
func Summaries(jobs []types.JobRecord, n int) []Summary {
	if n > 0 && len(jobs) > n {
		jobs = jobs[:n]
	}
	out := make([]Summary, 0, len(jobs))
	for _, job := range jobs {
		s := Summary{
			Title:      orNA(job.Title()),
			Company:    orNA(job.Company()),
			Highlights: map[string]any{},
		}
		if h, ok := job["job_highlights"].(map[string]any); ok {
			s.Highlights = h
		}
		out = append(out, s)
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
