// Package logging configures the process-wide zerolog logger and carries
// request-scoped loggers through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. It starts disabled so library users and
// tests stay quiet until Init is called.
var Logger = zerolog.Nop()

// Config controls log level and output format
type Config struct {
	Level        string `json:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format       string `json:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat   string `json:"time_format"`
	ReportCaller bool   `json:"report_caller"`
}

// DefaultConfig logs info and above as JSON
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// Init replaces the global logger according to config, writing to stderr
func Init(config Config) {
	InitWriter(config, os.Stderr)
}

// InitWriter is Init with an explicit destination
func InitWriter(config Config, out io.Writer) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	output := out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: config.TimeFormat}
	}

	ctxLogger := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctxLogger = ctxLogger.Caller()
	}

	Logger = ctxLogger.Logger()
	log.Logger = Logger
	zerolog.DefaultContextLogger = &Logger
}

// L returns the global logger
func L() *zerolog.Logger {
	return &Logger
}

// Ctx returns the logger stored in ctx, falling back to the global logger
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &Logger
}

// WithContext stores l in ctx
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// WithFields returns ctx carrying a child logger with the given string fields
func WithFields(ctx context.Context, fields map[string]string) context.Context {
	c := Ctx(ctx).With()
	for k, v := range fields {
		c = c.Str(k, v)
	}
	return c.Logger().WithContext(ctx)
}

// Preview shortens s for log output
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
