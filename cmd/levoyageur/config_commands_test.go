package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected output to mention %s, got %q", path, out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sample file: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--path", path); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
	if _, err := runCLI(t, "config", "init", "--path", path, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestConfigValidateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCLI(t, "config", "init", "--path", path); err != nil {
		t.Fatalf("config init: %v", err)
	}

	out, err := runCLI(t, "config", "validate", "--path", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "valid") {
		t.Fatalf("expected validation success, got %q", out)
	}
}

func TestConfigShowRendersDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	out, err := runCLI(t, "config", "show", "--path", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, fragment := range []string{"[matching]", "epsilon_degrees", "[places]"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in rendered config, got %q", fragment, out)
		}
	}
}
