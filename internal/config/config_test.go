package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("file does not exist")
	}
	if resolved != path {
		t.Fatalf("resolved = %q", resolved)
	}
	if cfg.Matching.EpsilonDegrees != defaultEpsilonDegrees {
		t.Fatalf("epsilon = %v", cfg.Matching.EpsilonDegrees)
	}
	if cfg.Places.BaseURL != defaultPlacesBaseURL {
		t.Fatalf("base url = %q", cfg.Places.BaseURL)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir should be absolute: %q", cfg.Paths.DataDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[places]
base_url = "https://places.example.com/v1/"
max_results = 3

[matching]
review_threshold = 80
auto_apply_threshold = 95

[logging]
format = "JSON"
level = "Debug"
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Places.BaseURL != "https://places.example.com/v1" {
		t.Fatalf("trailing slash should be trimmed: %q", cfg.Places.BaseURL)
	}
	if cfg.Places.MaxResults != 3 {
		t.Fatalf("max results = %d", cfg.Places.MaxResults)
	}
	if cfg.Matching.ReviewThreshold != 80 || cfg.Matching.AutoApplyThreshold != 95 {
		t.Fatalf("thresholds = %d/%d", cfg.Matching.ReviewThreshold, cfg.Matching.AutoApplyThreshold)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvertedThresholds(t *testing.T) {
	path := writeConfig(t, `
[matching]
review_threshold = 90
auto_apply_threshold = 70
`)

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("auto_apply below review must be rejected")
	} else if !strings.Contains(err.Error(), "auto_apply_threshold") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `
[matching]
name_weight = 1.5
`)

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("weight above 1 must be rejected")
	}
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("LEVOYAGEUR_PLACES_API_KEY", "  from-env  ")
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Places.APIKey != "from-env" {
		t.Fatalf("api key = %q", cfg.Places.APIKey)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[matching]") {
		t.Fatal("sample should document the matching section")
	}
}
