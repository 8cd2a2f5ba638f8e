// Package secrets resolves named credentials from a secret store or the
// process environment.
package secrets

import (
	"context"
	"os"
	"strings"
)

// Source looks up secret values by name. Unknown names are absent, not errors;
// a Source logs its own lookup failures.
type Source interface {
	Get(ctx context.Context, name string) (string, bool)
	GetMany(ctx context.Context, names []string) map[string]string
}

// EnvSource reads secrets from environment variables
type EnvSource struct{}

// Get returns the trimmed value of an environment variable; empty values are absent
func (EnvSource) Get(_ context.Context, name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// GetMany returns every set, non-empty variable among names
func (e EnvSource) GetMany(ctx context.Context, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := e.Get(ctx, name); ok {
			out[name] = v
		}
	}
	return out
}

// MapSource serves secrets from a fixed map (config files, tests)
type MapSource map[string]string

// Get returns the value stored under name
func (m MapSource) Get(_ context.Context, name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

// GetMany returns the stored values among names
func (m MapSource) GetMany(ctx context.Context, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := m.Get(ctx, name); ok {
			out[name] = v
		}
	}
	return out
}
