package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/logging"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"provider": "gemini",
		"models": {"advanced": "gemini-exp"},
		"credential_parameter": "/resume-analyzer/gemini-key",
		"use_secret_store": true,
		"aws": {"region": "eu-west-1"},
		"quick": {"timeout_seconds": 5, "temperature": 0},
		"retry_attempts": 3,
		"log": {"level": "debug", "format": "pretty"},
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, map[string]string{"advanced": "gemini-exp"}, cfg.Models)
	assert.Equal(t, "/resume-analyzer/gemini-key", cfg.CredentialParameter)
	assert.True(t, cfg.UseSecretStore)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, 5, cfg.Quick.TimeoutSeconds)
	require.NotNil(t, cfg.Quick.Temperature)
	assert.Equal(t, float32(0), *cfg.Quick.Temperature)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	hot := float32(3)
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "defaults", cfg: Default()},
		{name: "unknown provider", cfg: Config{Provider: "openai"}, wantErr: "Provider"},
		{name: "unknown tier", cfg: Config{Models: map[string]string{"huge": "m"}}, wantErr: "Models"},
		{name: "empty model", cfg: Config{Models: map[string]string{"lite": ""}}, wantErr: "Models"},
		{name: "bad base url", cfg: Config{APIBaseURL: "not a url"}, wantErr: "APIBaseURL"},
		{name: "negative tokens", cfg: Config{Full: TaskConfig{MaxTokens: -1}}, wantErr: "MaxTokens"},
		{name: "negative timeout", cfg: Config{Gap: TaskConfig{TimeoutSeconds: -5}}, wantErr: "TimeoutSeconds"},
		{name: "temperature range", cfg: Config{Quick: TaskConfig{Temperature: &hot}}, wantErr: "Temperature"},
		{name: "too many retries", cfg: Config{RetryAttempts: 50}, wantErr: "RetryAttempts"},
		{name: "access key alone", cfg: Config{AWS: AWSConfig{AccessKey: "AKIA"}}, wantErr: "SecretKey"},
		{name: "log format", cfg: Config{Log: logConfig("info", "xml")}, wantErr: "Format"},
		{name: "secret store without parameter", cfg: Config{UseSecretStore: true}, wantErr: "credential_parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	zero := float32(0)
	partial := Config{
		Provider: "gemini",
		Models:   map[string]string{"lite": "custom-lite"},
		Quick:    TaskConfig{TimeoutSeconds: 5, Temperature: &zero},
		AWS:      AWSConfig{Region: "us-east-2"},
	}
	defaults := Default()
	defaults.Models = map[string]string{"lite": "default-lite", "advanced": "default-advanced"}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "gemini", merged.Provider)
	assert.Equal(t, 5, merged.Quick.TimeoutSeconds)
	assert.Equal(t, float32(0), *merged.Quick.Temperature)
	assert.Equal(t, "us-east-2", merged.AWS.Region)
	assert.Equal(t, map[string]string{"lite": "custom-lite", "advanced": "default-advanced"}, merged.Models)

	// Default values should fill in empty fields
	assert.Equal(t, 2000, merged.Quick.MaxTokens)
	assert.Equal(t, 60, merged.Full.TimeoutSeconds)
	assert.Equal(t, 90, merged.Gap.TimeoutSeconds)
	assert.Equal(t, 4000, merged.Gap.MaxTokens)
	assert.Equal(t, 1, merged.RetryAttempts)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Equal(t, "info", merged.Log.Level)

	// The partial config is not modified
	assert.Zero(t, partial.Full.TimeoutSeconds)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Provider: "anthropic", RetryAttempts: 2}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "anthropic", merged.Provider)
	assert.Equal(t, 2, merged.RetryAttempts)
	assert.Nil(t, merged.Models)
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Quick.TimeoutSeconds = 1
	cfg.Full.Model = "pinned-model"
	cfg.RetryAttempts = 3
	cfg.RetryBackoff = 250
	cfg.SkipSchema = true

	opts := cfg.PipelineOptions()

	assert.Equal(t, time.Second, opts.Quick.Timeout)
	assert.Equal(t, llm.TierLite, opts.Quick.Tier)
	assert.Equal(t, float32(0.1), opts.Quick.Temperature)
	assert.Equal(t, "pinned-model", opts.Full.Model)
	assert.Equal(t, llm.TierStandard, opts.Full.Tier)
	assert.Equal(t, llm.TierAdvanced, opts.Gap.Tier)
	assert.Equal(t, 10, opts.Validation.MaxTokens)
	assert.Equal(t, float32(0), opts.Validation.Temperature)
	assert.Equal(t, 3, opts.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, opts.RetryBackoff)
	assert.False(t, opts.ValidateSchema)
}

func TestDefault_RoundTripsPipelineDefaults(t *testing.T) {
	cfg := Default()
	opts := cfg.PipelineOptions()
	assert.Equal(t, 20*time.Second, opts.Quick.Timeout)
	assert.Equal(t, 60*time.Second, opts.Full.Timeout)
	assert.Equal(t, 90*time.Second, opts.Gap.Timeout)
	assert.True(t, opts.ValidateSchema)
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{Provider: "gemini", Models: map[string]string{"advanced": "gemini-exp"}}

	llmCfg := cfg.LLMConfig()

	assert.Equal(t, llm.ProviderGemini, llmCfg.Provider)
	assert.Equal(t, "gemini-exp", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", llmCfg.GetModel(llm.TierLite))

	anthropic := (&Config{}).LLMConfig()
	assert.Equal(t, llm.ProviderAnthropic, anthropic.Provider)
}

func logConfig(level, format string) logging.Config {
	return logging.Config{Level: level, Format: format}
}
