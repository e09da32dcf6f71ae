package models

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Env maps environment variable names for model configuration.
type Env struct {
	MaxAttempts    string
	InitialDelay   string
	AttemptTimeout string
	OpenAIKey      string
	OpenAIBaseURL  string
	GeminiKey      string
}

// ProviderConfig holds credentials for one upstream provider.
type ProviderConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Config holds provider credentials and the retry policy.
type Config struct {
	MaxAttempts    int            `toml:"max_attempts"`
	InitialDelay   string         `toml:"initial_delay"`
	AttemptTimeout string         `toml:"attempt_timeout"`
	OpenAI         ProviderConfig `toml:"openai"`
	Gemini         ProviderConfig `toml:"gemini"`
}

// InitialDelayDuration parses the base backoff delay.
func (c *Config) InitialDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.InitialDelay)
	return d
}

// AttemptTimeoutDuration parses the per-attempt timeout. Zero disables it.
func (c *Config) AttemptTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.AttemptTimeout)
	return d
}

// Policy returns the retry policy described by the configuration.
func (c *Config) Policy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    c.MaxAttempts,
		InitialDelay:   c.InitialDelayDuration(),
		AttemptTimeout: c.AttemptTimeoutDuration(),
	}
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.InitialDelay != "" {
		c.InitialDelay = overlay.InitialDelay
	}
	if overlay.AttemptTimeout != "" {
		c.AttemptTimeout = overlay.AttemptTimeout
	}
	if overlay.OpenAI.APIKey != "" {
		c.OpenAI.APIKey = overlay.OpenAI.APIKey
	}
	if overlay.OpenAI.BaseURL != "" {
		c.OpenAI.BaseURL = overlay.OpenAI.BaseURL
	}
	if overlay.Gemini.APIKey != "" {
		c.Gemini.APIKey = overlay.Gemini.APIKey
	}
	if overlay.Gemini.BaseURL != "" {
		c.Gemini.BaseURL = overlay.Gemini.BaseURL
	}
}

func (c *Config) loadDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.InitialDelay == "" {
		c.InitialDelay = "1s"
	}
	if c.AttemptTimeout == "" {
		c.AttemptTimeout = "60s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.MaxAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAttempts = n
		}
	}
	if v := getenv(env.InitialDelay); v != "" {
		c.InitialDelay = v
	}
	if v := getenv(env.AttemptTimeout); v != "" {
		c.AttemptTimeout = v
	}
	if v := getenv(env.OpenAIKey); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := getenv(env.OpenAIBaseURL); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := getenv(env.GeminiKey); v != "" {
		c.Gemini.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if _, err := time.ParseDuration(c.InitialDelay); err != nil {
		return fmt.Errorf("invalid initial_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.AttemptTimeout); err != nil {
		return fmt.Errorf("invalid attempt_timeout: %w", err)
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
