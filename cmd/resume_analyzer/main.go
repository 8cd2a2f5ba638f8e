// Package main provides the resume_analyzer command line harness.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Résumé extraction and qualification gap analysis",
	Long: "resume_analyzer extracts structured résumé records from PDF, DOCX, HTML and text documents " +
		"through an LLM, and compares résumés against job-search payloads to report qualification gaps.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	verbose    bool
	logLevel   string
	logFormat  string

	// appConfig is the merged configuration, set before any command runs
	appConfig config.Config
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print pipeline progress and summaries to stderr")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (json, pretty)")
}

// setup loads the config file, applies flag overrides and initializes logging
func setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg.MergeWithDefaults(config.Default())
	logging.InitWriter(appConfig.Log, cmd.ErrOrStderr())
	logging.L().Debug().
		Str("provider", appConfig.Provider).
		Str("config", configPath).
		Msg("configuration loaded")
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
