// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	// Provider
	Provider   string            `json:"provider,omitempty" validate:"omitempty,oneof=anthropic gemini"`
	Models     map[string]string `json:"models,omitempty" validate:"omitempty,dive,keys,oneof=lite standard advanced,endkeys,required"`
	APIBaseURL string            `json:"api_base_url,omitempty" validate:"omitempty,url"`

	// Credentials
	APIKey              string   `json:"api_key,omitempty"`              // Used before the environment when set
	CredentialParameter string   `json:"credential_parameter,omitempty"` // Secret store parameter holding the key
	CredentialEnv       []string `json:"credential_env,omitempty"`       // Environment fallbacks, in order
	UseSecretStore      bool     `json:"use_secret_store,omitempty"`

	AWS AWSConfig `json:"aws"`

	// Per-task limits
	Quick      TaskConfig `json:"quick"`
	Full       TaskConfig `json:"full"`
	Gap        TaskConfig `json:"gap"`
	Validation TaskConfig `json:"validation"`

	RetryAttempts int  `json:"retry_attempts,omitempty" validate:"gte=0,lte=10"`
	RetryBackoff  int  `json:"retry_backoff_ms,omitempty" validate:"gte=0"`
	Concurrency   int  `json:"concurrency,omitempty" validate:"gte=0,lte=64"`
	SkipSchema    bool `json:"skip_schema,omitempty"`

	Log     logging.Config `json:"log"`
	Verbose bool           `json:"verbose,omitempty"`
}

// TaskConfig overrides the model parameters of one kind of LLM call
type TaskConfig struct {
	Model          string   `json:"model,omitempty"`
	MaxTokens      int      `json:"max_tokens,omitempty" validate:"gte=0,lte=64000"`
	Temperature    *float32 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty" validate:"gte=0,lte=600"`
}

// AWSConfig holds the region and static credentials for S3 and SSM. Empty
// keys fall back to the default AWS credential chain.
type AWSConfig struct {
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" validate:"omitempty,url"`
	AccessKey string `json:"access_key,omitempty" validate:"required_with=SecretKey"`
	SecretKey string `json:"secret_key,omitempty" validate:"required_with=AccessKey"`
}

// Default returns the built-in configuration
func Default() Config {
	opts := pipeline.DefaultOptions()
	return Config{
		Provider:      string(llm.ProviderAnthropic),
		Quick:         taskConfig(opts.Quick),
		Full:          taskConfig(opts.Full),
		Gap:           taskConfig(opts.Gap),
		Validation:    taskConfig(opts.Validation),
		RetryAttempts: opts.RetryAttempts,
		RetryBackoff:  int(opts.RetryBackoff / time.Millisecond),
		Concurrency:   4,
		Log:           logging.DefaultConfig(),
	}
}

func taskConfig(s pipeline.TaskSettings) TaskConfig {
	temperature := s.Temperature
	return TaskConfig{
		Model:          s.Model,
		MaxTokens:      s.MaxTokens,
		Temperature:    &temperature,
		TimeoutSeconds: int(s.Timeout / time.Second),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked; defaults are merged afterwards.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.UseSecretStore && c.CredentialParameter == "" {
		return fmt.Errorf("config error: 'use_secret_store' requires 'credential_parameter'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.CredentialParameter == "" {
		result.CredentialParameter = defaults.CredentialParameter
	}
	if len(result.CredentialEnv) == 0 {
		result.CredentialEnv = defaults.CredentialEnv
	}
	if result.AWS.Region == "" {
		result.AWS.Region = defaults.AWS.Region
	}
	if result.AWS.Endpoint == "" {
		result.AWS.Endpoint = defaults.AWS.Endpoint
	}
	if result.AWS.AccessKey == "" && result.AWS.SecretKey == "" {
		result.AWS.AccessKey = defaults.AWS.AccessKey
		result.AWS.SecretKey = defaults.AWS.SecretKey
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}
	if result.Log.TimeFormat == "" {
		result.Log.TimeFormat = defaults.Log.TimeFormat
	}

	// Models: entries from the file win, defaults fill the rest
	if len(defaults.Models) > 0 {
		models := make(map[string]string, len(defaults.Models))
		for tier, model := range defaults.Models {
			models[tier] = model
		}
		for tier, model := range result.Models {
			models[tier] = model
		}
		result.Models = models
	}

	result.Quick = result.Quick.merge(defaults.Quick)
	result.Full = result.Full.merge(defaults.Full)
	result.Gap = result.Gap.merge(defaults.Gap)
	result.Validation = result.Validation.merge(defaults.Validation)

	// Int fields: use default if zero
	if result.RetryAttempts == 0 {
		result.RetryAttempts = defaults.RetryAttempts
	}
	if result.RetryBackoff == 0 {
		result.RetryBackoff = defaults.RetryBackoff
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func (t TaskConfig) merge(defaults TaskConfig) TaskConfig {
	if t.Model == "" {
		t.Model = defaults.Model
	}
	if t.MaxTokens == 0 {
		t.MaxTokens = defaults.MaxTokens
	}
	if t.Temperature == nil {
		t.Temperature = defaults.Temperature
	}
	if t.TimeoutSeconds == 0 {
		t.TimeoutSeconds = defaults.TimeoutSeconds
	}
	return t
}

func (t TaskConfig) settings(tier llm.ModelTier) pipeline.TaskSettings {
	s := pipeline.TaskSettings{
		Tier:      tier,
		Model:     t.Model,
		MaxTokens: t.MaxTokens,
		Timeout:   time.Duration(t.TimeoutSeconds) * time.Second,
	}
	if t.Temperature != nil {
		s.Temperature = *t.Temperature
	}
	return s
}

// PipelineOptions converts the task limits into orchestrator options
func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Quick = c.Quick.settings(llm.TierLite)
	opts.Full = c.Full.settings(llm.TierStandard)
	opts.Gap = c.Gap.settings(llm.TierAdvanced)
	opts.Validation = c.Validation.settings(llm.TierLite)
	opts.RetryAttempts = c.RetryAttempts
	opts.RetryBackoff = time.Duration(c.RetryBackoff) * time.Millisecond
	opts.ValidateSchema = !c.SkipSchema
	return opts
}

// LLMConfig returns the provider's default models with configured overrides
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(llm.Provider(c.Provider))
	for tier, model := range c.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	return cfg
}
