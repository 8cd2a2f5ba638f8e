package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/docx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.docx>",
	Short: "Print the structure of a DOCX document as JSON",
	Long:  "Parse a DOCX container into paragraphs, tables, runs, hyperlinks, comments, bookmarks and notes. No LLM is called.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var inspectOutput string

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := docx.Extract(data)
	if err != nil {
		return err
	}
	return writeJSON(cmd, inspectOutput, doc)
}
