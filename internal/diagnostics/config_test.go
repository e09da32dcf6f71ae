package diagnostics_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/scribe/internal/diagnostics"
	"github.com/JaimeStill/scribe/internal/models"
)

func TestConfig_Defaults(t *testing.T) {
	var cfg diagnostics.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Model() != models.GPT4oMini {
		t.Errorf("Model = %q, want %q", cfg.Model(), models.GPT4oMini)
	}
	if cfg.Temperature() != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", cfg.Temperature())
	}
	if cfg.TimeoutDuration() != 5*time.Minute {
		t.Errorf("Timeout = %v, want 5m", cfg.TimeoutDuration())
	}
	if cfg.IsConcurrent() {
		t.Error("Concurrent should default to false")
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %d, want 4", cfg.MaxConcurrency)
	}
}

func TestConfig_Env(t *testing.T) {
	t.Setenv("TEST_DIAG_MODEL", string(models.Gemini15Flash))
	t.Setenv("TEST_DIAG_TEMP", "0.9")
	t.Setenv("TEST_DIAG_TIMEOUT", "30s")
	t.Setenv("TEST_DIAG_CONCURRENT", "true")

	env := &diagnostics.Env{
		DefaultModel:       "TEST_DIAG_MODEL",
		DefaultTemperature: "TEST_DIAG_TEMP",
		Timeout:            "TEST_DIAG_TIMEOUT",
		Concurrent:         "TEST_DIAG_CONCURRENT",
	}

	var cfg diagnostics.Config
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Model() != models.Gemini15Flash {
		t.Errorf("Model = %q", cfg.Model())
	}
	if cfg.Temperature() != 0.9 {
		t.Errorf("Temperature = %v", cfg.Temperature())
	}
	if cfg.TimeoutDuration() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.TimeoutDuration())
	}
	if !cfg.IsConcurrent() {
		t.Error("Concurrent = false, want true")
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  diagnostics.Config
	}{
		{"unknown model", diagnostics.Config{DefaultModel: "gpt-2"}},
		{"temperature too high", diagnostics.Config{DefaultTemperature: ptr(2.5)}},
		{"bad timeout", diagnostics.Config{Timeout: "soon"}},
		{"negative timeout", diagnostics.Config{Timeout: "-1s"}},
		{"negative concurrency", diagnostics.Config{MaxConcurrency: -1}},
		{"negative checkpoint interval", diagnostics.Config{CheckpointInterval: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := diagnostics.Config{DefaultModel: string(models.GPT4oMini), Timeout: "5m"}
	base.Merge(&diagnostics.Config{Timeout: "1m", Concurrent: ptr(true)})

	if base.Timeout != "1m" || !base.IsConcurrent() {
		t.Errorf("merged = %+v", base)
	}
	if base.DefaultModel != string(models.GPT4oMini) {
		t.Errorf("DefaultModel overwritten: %q", base.DefaultModel)
	}
}

func TestConfig_MergeExplicitZero(t *testing.T) {
	base := diagnostics.Config{DefaultTemperature: ptr(0.7), Concurrent: ptr(true)}
	base.Merge(&diagnostics.Config{DefaultTemperature: ptr(0.0), Concurrent: ptr(false)})

	if err := base.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if base.Temperature() != 0 {
		t.Errorf("Temperature = %v, want 0", base.Temperature())
	}
	if base.IsConcurrent() {
		t.Error("Concurrent = true, want overlay false")
	}
}

func TestConfig_ZeroTemperatureKept(t *testing.T) {
	cfg := diagnostics.Config{DefaultTemperature: ptr(0.0)}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Temperature() != 0 {
		t.Errorf("Temperature = %v, want 0", cfg.Temperature())
	}
}
