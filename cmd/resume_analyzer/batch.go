package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <location>...",
	Short: "Extract many résumés concurrently",
	Long: "Extract a ResumeRecord from every location with bounded concurrency. A failed document " +
		"is reported in its result entry and does not stop the others.",
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchMode        string
	batchConcurrency int
	batchOutput      string
)

// batchEntry is one element of the batch JSON output
type batchEntry struct {
	Location string              `json:"location"`
	Record   *types.ResumeRecord `json:"record,omitempty"`
	Error    *failureOutput      `json:"error,omitempty"`
}

func init() {
	batchCmd.Flags().StringVarP(&batchMode, "mode", "m", string(pipeline.ModeQuick), "Extraction mode: quick or full")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Documents in flight (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	loader, err := newLoader(ctx, args...)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}

	// Load failures are reported per entry like extraction failures
	entries := make([]batchEntry, len(args))
	docs := make([]pipeline.Document, 0, len(args))
	index := make([]int, 0, len(args))
	for i, location := range args {
		entries[i].Location = location
		doc, err := loader.Load(ctx, location)
		if err != nil {
			failure := describeFailure(err)
			entries[i].Error = &failure
			continue
		}
		docs = append(docs, *doc)
		index = append(index, i)
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Concurrency
	}
	results := orch.ExtractBatch(ctx, docs, pipeline.Mode(batchMode), concurrency)
	for _, res := range results {
		entry := &entries[index[res.Index]]
		if res.Err != nil {
			failure := describeFailure(res.Err)
			entry.Error = &failure
			continue
		}
		entry.Record = res.Record
	}

	if appConfig.Verbose {
		printer(cmd).PrintBatch(results)
	}
	return writeJSON(cmd, batchOutput, entries)
}
