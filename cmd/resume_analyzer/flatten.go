package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten <location>",
	Short: "Print the prompt text of a document",
	Long:  "Reduce a document to the text that would be sent to the model. No LLM is called.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlatten,
}

var flattenMeta bool

// flattenOutput is printed with --meta
type flattenOutput struct {
	Metadata    *ingestion.Metadata     `json:"metadata"`
	Signals     ingestion.ResumeSignals `json:"signals"`
	LooksLikeCV bool                    `json:"looks_like_resume"`
	Text        string                  `json:"text"`
}

func init() {
	flattenCmd.Flags().BoolVar(&flattenMeta, "meta", false, "Print JSON with document metadata and résumé signals")

	rootCmd.AddCommand(flattenCmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	loader, err := newLoader(ctx, args[0])
	if err != nil {
		return err
	}
	doc, err := loader.Load(ctx, args[0])
	if err != nil {
		return err
	}
	text, err := doc.Flatten()
	if err != nil {
		return err
	}

	if !flattenMeta {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	return writeJSON(cmd, "", flattenOutput{
		Metadata:    ingestion.NewMetadata(args[0], doc.Format(), doc.Data, text),
		Signals:     ingestion.ScanResumeSignals(text),
		LooksLikeCV: ingestion.LooksLikeResume(text),
		Text:        text,
	})
}
