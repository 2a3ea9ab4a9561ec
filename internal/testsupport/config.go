// Package testsupport holds helpers shared by package tests: temp-dir
// configs, opened stores, and seed records.
package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/gitxyzlabs/levoyageur/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Places.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPlacesAPIKey sets the provider key on the test config.
func WithPlacesAPIKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Places.APIKey = key
	}
}

// WithMatching overrides the matching section.
func WithMatching(matching config.Matching) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching = matching
	}
}
