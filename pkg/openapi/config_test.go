package openapi_test

import (
	"testing"

	"github.com/JaimeStill/scribe/pkg/openapi"
)

func TestConfig_Servers(t *testing.T) {
	var cfg openapi.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := cfg.Servers("localhost:8080")[0].URL; got != "http://localhost:8080" {
		t.Errorf("fallback server = %q", got)
	}

	cfg.ServerURL = "https://notes.example.com/"
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := cfg.Servers("localhost:8080")[0].URL; got != "https://notes.example.com" {
		t.Errorf("server = %q", got)
	}
}

func TestConfig_Env(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Notes")
	t.Setenv("TEST_OPENAPI_SERVER_URL", "http://10.0.0.5:9000")

	cfg := openapi.Config{Title: "Scribe"}
	err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE", ServerURL: "TEST_OPENAPI_SERVER_URL"})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	info := cfg.Info("1.2.0")
	if info.Title != "Notes" || info.Version != "1.2.0" {
		t.Errorf("Info = %+v", info)
	}
	if cfg.ServerURL != "http://10.0.0.5:9000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
}

func TestConfig_InvalidServerURL(t *testing.T) {
	for _, u := range []string{"notes.example.com", "ftp://host", "http://"} {
		cfg := openapi.Config{ServerURL: u}
		if err := cfg.Finalize(nil); err == nil {
			t.Errorf("ServerURL %q: expected error", u)
		}
	}
}
