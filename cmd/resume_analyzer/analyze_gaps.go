package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/jobs"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeGapsCmd = &cobra.Command{
	Use:   "analyze-gaps",
	Short: "Compare a résumé against job postings and report qualification gaps",
	Long: "Aggregate qualifications from a job-search payload and/or job posting URLs, then ask the model " +
		"which of them the résumé is missing. The résumé is a document location or a ResumeRecord JSON file.",
	Args: cobra.NoArgs,
	RunE: runAnalyzeGaps,
}

var (
	gapsResume     string
	gapsResumeJSON string
	gapsJobs       string
	gapsJobURLs    []string
	gapsOutput     string
)

func init() {
	analyzeGapsCmd.Flags().StringVar(&gapsResume, "resume", "", "Résumé document location (path, URL or s3://)")
	analyzeGapsCmd.Flags().StringVar(&gapsResumeJSON, "resume-json", "", "ResumeRecord JSON file produced by extract")
	analyzeGapsCmd.Flags().StringVar(&gapsJobs, "jobs", "", "Job-search payload JSON file (- for stdin)")
	analyzeGapsCmd.Flags().StringArrayVar(&gapsJobURLs, "job-url", nil, "Job posting URL (repeatable)")
	analyzeGapsCmd.Flags().StringVarP(&gapsOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeGapsCmd.MarkFlagsMutuallyExclusive("resume", "resume-json")
	analyzeGapsCmd.MarkFlagsOneRequired("resume", "resume-json")

	rootCmd.AddCommand(analyzeGapsCmd)
}

func runAnalyzeGaps(cmd *cobra.Command, _ []string) error {
	if gapsJobs == "" && len(gapsJobURLs) == 0 {
		return fmt.Errorf("must provide --jobs or at least one --job-url")
	}
	ctx := cmd.Context()

	req := pipeline.GapRequest{}
	switch {
	case gapsResumeJSON != "":
		data, err := readInput(cmd, gapsResumeJSON)
		if err != nil {
			return err
		}
		// Partial records are accepted and coerced like a model response
		var raw map[string]any
		if err := json.Unmarshal([]byte(llm.CleanJSONBlock(string(data))), &raw); err != nil {
			return fmt.Errorf("failed to parse résumé record: %w", err)
		}
		req.Resume = pipeline.Coerce(raw)
	default:
		loader, err := newLoader(ctx, gapsResume)
		if err != nil {
			return err
		}
		doc, err := loader.Load(ctx, gapsResume)
		if err != nil {
			return err
		}
		req.Document = doc
	}

	payload, err := jobsPayload(cmd)
	if err != nil {
		return err
	}
	req.JobsPayload = payload

	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}
	record, err := orch.AnalyzeGaps(ctx, req)
	if err != nil {
		return err
	}
	if appConfig.Verbose {
		printer(cmd).PrintGapAnalysis(record)
	}
	return writeJSON(cmd, gapsOutput, record)
}

// jobsPayload returns the --jobs payload as is, or a job list that merges it
// with the postings fetched from --job-url
func jobsPayload(cmd *cobra.Command) (any, error) {
	var payload any
	if gapsJobs != "" {
		data, err := readInput(cmd, gapsJobs)
		if err != nil {
			return nil, err
		}
		payload = decodePayload(data)
	}
	if len(gapsJobURLs) == 0 {
		return payload, nil
	}

	var list []types.JobRecord
	if payload != nil {
		list = jobs.Normalize(payload)
	}
	for _, u := range gapsJobURLs {
		job, err := fetch.JobPosting(cmd.Context(), u, fetch.DefaultOptions())
		if err != nil {
			return nil, err
		}
		list = append(list, job)
	}
	if appConfig.Verbose {
		printer(cmd).PrintJobSummaries(jobs.Summaries(list, 0), len(list))
	}
	return list, nil
}
