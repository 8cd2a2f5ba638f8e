package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	schemafiles "github.com/jonathan/resume-analyzer/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <resume|gaps|schema.json> <file.json>",
	Short: "Validate a JSON file against a record schema",
	Long: "Validate a JSON file against the built-in résumé record or gap analysis schema, " +
		"or against a JSON Schema file given by path.",
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

// builtinSchemas maps the short names accepted by validate to embedded schemas
var builtinSchemas = map[string]string{
	"resume": schemafiles.ResumeRecord,
	"gaps":   schemafiles.GapAnalysis,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaArg, jsonPath := args[0], args[1]

	var err error
	if name, ok := builtinSchemas[schemaArg]; ok {
		var schema, data []byte
		if schema, err = schemafiles.Files.ReadFile(name); err != nil {
			return err
		}
		if data, err = readInput(cmd, jsonPath); err != nil {
			return err
		}
		err = schemas.ValidateJSONString(string(schema), string(data))
	} else {
		err = schemas.ValidateJSON(schemaArg, jsonPath)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", jsonPath)
	return err
}
