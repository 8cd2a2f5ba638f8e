package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/jobs"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var normalizeJobsCmd = &cobra.Command{
	Use:   "normalize-jobs <payload.json>",
	Short: "Normalize a job-search payload and aggregate its qualifications",
	Long: "Collapse a job-search payload (a list, an object with a data field, a JSON string or a single job) " +
		"into a canonical job list and print the deduplicated qualifications. Use - to read stdin.",
	Args: cobra.ExactArgs(1),
	RunE: runNormalizeJobs,
}

var (
	normalizeOutput  string
	normalizeSummary int
)

// normalizedJobs is the JSON printed by normalize-jobs
type normalizedJobs struct {
	Shape          string            `json:"shape"`
	Jobs           []types.JobRecord `json:"jobs"`
	Summaries      []jobs.Summary    `json:"summaries"`
	Qualifications []string          `json:"qualifications"`
}

func init() {
	normalizeJobsCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	normalizeJobsCmd.Flags().IntVar(&normalizeSummary, "summaries", 3, "Number of job summaries to include (0 for all)")

	rootCmd.AddCommand(normalizeJobsCmd)
}

func runNormalizeJobs(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	jobList, kind := jobs.NormalizeShape(decodePayload(data))
	quals := jobs.AggregateQualifications(jobList)
	summaries := jobs.Summaries(jobList, normalizeSummary)

	if appConfig.Verbose {
		p := printer(cmd)
		p.PrintJobSummaries(summaries, len(jobList))
		p.PrintQualifications(quals.Items())
	}
	return writeJSON(cmd, normalizeOutput, normalizedJobs{
		Shape:          kind.String(),
		Jobs:           jobList,
		Summaries:      summaries,
		Qualifications: quals.Items(),
	})
}

// decodePayload parses a payload file as JSON, tolerating a markdown fence or
// a preamble around it. Text that is not JSON is passed on as a string so the
// normalizer reports it.
func decodePayload(data []byte) any {
	var payload any
	if err := json.Unmarshal(data, &payload); err == nil {
		return payload
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(string(data))), &payload); err != nil {
		return string(data)
	}
	return payload
}
