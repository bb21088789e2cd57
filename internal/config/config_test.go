package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SamplingHz != 4 {
		t.Errorf("default sampling_hz = %v, want 4", cfg.SamplingHz)
	}
	if cfg.LogMarker != ".xmlLog" {
		t.Errorf("default log_marker = %q, want .xmlLog", cfg.LogMarker)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, "sampling_hz: 8\nlogging:\n  level: debug\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SamplingHz != 8 {
		t.Errorf("sampling_hz = %v, want 8", cfg.SamplingHz)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched fields keep their defaults.
	if cfg.LogMarker != ".xmlLog" {
		t.Errorf("log_marker = %q, want default .xmlLog", cfg.LogMarker)
	}
	if cfg.Workers != 1 {
		t.Errorf("workers = %d, want default 1", cfg.Workers)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative sampling rate", "sampling_hz: -4\n"},
		{"zero workers", "workers: 0\n"},
		{"empty marker", "log_marker: \"\"\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"not yaml", "{{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("Load accepted %q", tt.content)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
