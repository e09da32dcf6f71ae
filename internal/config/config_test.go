package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/models"
)

const baseTOML = `
version = "1.2.3"

[server]
port = 9090

[database]
name = "scribe"
user = "scribe"

[api]
max_body_size = "4MB"

[models]
max_attempts = 5

[diagnostics]
default_model = "gemini-1.5-flash"
timeout = "2m"

[history]
max_entries = 10

[documents]
max_size = "256KiB"
`

const validDatabase = "[database]\nname = \"scribe\"\nuser = \"scribe\"\n"

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", baseTOML)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"version", cfg.Version, "1.2.3"},
		{"addr", cfg.Server.Addr(), "0.0.0.0:9090"},
		{"max body", cfg.API.MaxBodyBytes(), int64(4 * 1024 * 1024)},
		{"max attempts", cfg.Models.MaxAttempts, 5},
		{"default model", cfg.Diagnostics.Model(), models.Gemini15Flash},
		{"diagnostic timeout", cfg.Diagnostics.TimeoutDuration(), 2 * time.Minute},
		{"history max", cfg.History.MaxEntries, 10},
		{"document max", cfg.Documents.MaxSizeBytes(), int64(256 * 1024)},
		{"shutdown default", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"page size default", cfg.API.Pagination.DefaultPageSize > 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", baseTOML)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("DIAGNOSTICS_CONCURRENT", "true")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Models.OpenAI.APIKey != "sk-test" || cfg.Models.Gemini.APIKey != "gm-test" {
		t.Errorf("provider keys not loaded: %+v", cfg.Models)
	}
	if !cfg.Diagnostics.IsConcurrent() {
		t.Error("Concurrent = false, want true")
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoadFrom_Overlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseTOML)
	writeConfig(t, dir, "config.staging.toml", "[history]\nmax_entries = 50\n")

	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.History.MaxEntries != 50 {
		t.Errorf("MaxEntries = %d, want overlay value 50", cfg.History.MaxEntries)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want base value", cfg.Version)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed toml", "[server\nport = 1", "parse config"},
		{"unknown model", "[diagnostics]\ndefault_model = \"gpt-2\"", "diagnostics"},
		{"bad body size", "[api]\nmax_body_size = \"lots\"", "max_body_size"},
		{"write timeout below run deadline", "[server]\nwrite_timeout = \"1m\"\n[diagnostics]\ntimeout = \"2m\"", "write_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", validDatabase+tt.body)

			_, err := config.LoadFrom(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := config.LoadFrom(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
