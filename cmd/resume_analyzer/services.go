package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/secrets"
)

// newCaller builds the LLM caller; tests replace it with a stub
var newCaller = buildGateway

// buildGateway wires the provider client and credential sources from config
func buildGateway(ctx context.Context, cfg config.Config) (pipeline.Caller, error) {
	llmCfg := cfg.LLMConfig()
	client := llm.NewClient(llmCfg, cfg.APIBaseURL)

	creds := llm.Credentials{EnvNames: cfg.CredentialEnv}
	if cfg.APIKey != "" {
		creds.Env = secrets.MapSource{"api_key": cfg.APIKey}
		creds.EnvNames = []string{"api_key"}
	}
	if cfg.UseSecretStore {
		awsCfg, err := cfg.AWS.Load(ctx)
		if err != nil {
			return nil, err
		}
		creds.Store = secrets.NewSSMSourceFromConfig(awsCfg)
		creds.ParameterName = cfg.CredentialParameter
	}
	return llm.NewGateway(client, llmCfg, creds), nil
}

// newOrchestrator builds an orchestrator from the merged config. Verbose mode
// prints every state transition to stderr.
func newOrchestrator(cmd *cobra.Command) (*pipeline.Orchestrator, error) {
	caller, err := newCaller(cmd.Context(), appConfig)
	if err != nil {
		return nil, err
	}
	opts := appConfig.PipelineOptions()
	if appConfig.Verbose {
		opts.OnTransition = printer(cmd).PrintTransition
	}
	return pipeline.New(caller, opts), nil
}

// newLoader builds a document loader. The S3 client is only created when one
// of the locations needs it.
func newLoader(ctx context.Context, locations ...string) (*fetch.Loader, error) {
	loader := &fetch.Loader{HTTP: fetch.DefaultOptions()}
	for _, location := range locations {
		if !strings.HasPrefix(location, "s3://") {
			continue
		}
		awsCfg, err := appConfig.AWS.Load(ctx)
		if err != nil {
			return nil, err
		}
		loader.S3 = fetch.NewS3SourceFromConfig(awsCfg, fetch.DefaultMaxBytes)
		break
	}
	return loader, nil
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// writeJSON writes v as indented JSON to path, or to the command's output
// when path is empty or "-"
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readInput reads a file, or stdin for "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// failureOutput is the JSON shape of a failed request
type failureOutput struct {
	Kind      pipeline.Kind `json:"kind"`
	Stage     string        `json:"stage,omitempty"`
	Message   string        `json:"message"`
	Retryable bool          `json:"retryable"`
}

func describeFailure(err error) failureOutput {
	var f *pipeline.Failure
	if errors.As(err, &f) {
		return failureOutput{Kind: f.Kind, Stage: string(f.Stage), Message: f.Message, Retryable: f.Retryable()}
	}
	return failureOutput{Message: err.Error()}
}
