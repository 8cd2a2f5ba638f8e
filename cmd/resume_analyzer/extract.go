package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract <location>",
	Short: "Extract a structured résumé record from a document",
	Long: "Extract a ResumeRecord from a local file, an http(s) URL or an s3://bucket/key object. " +
		"PDF, DOCX, HTML and plain text are recognised by content, MIME type or extension.",
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var (
	extractMode     string
	extractOutput   string
	extractValidate bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractMode, "mode", "m", string(pipeline.ModeQuick), "Extraction mode: quick or full")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Ask the model whether the document is a résumé before extracting")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	loader, err := newLoader(ctx, args[0])
	if err != nil {
		return err
	}
	doc, err := loader.Load(ctx, args[0])
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}

	if extractValidate {
		valid, err := orch.ValidateResume(ctx, *doc)
		if err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("%s does not look like a résumé", doc.Name)
		}
	}

	record, err := orch.ExtractResume(ctx, *doc, pipeline.Mode(extractMode))
	if err != nil {
		return err
	}
	if appConfig.Verbose {
		printer(cmd).PrintResume(record)
	}
	return writeJSON(cmd, extractOutput, record)
}
