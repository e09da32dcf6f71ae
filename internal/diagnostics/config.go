package diagnostics

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/scribe/internal/models"
)

// Env maps environment variable names for orchestration configuration.
type Env struct {
	DefaultModel       string
	DefaultTemperature string
	Timeout            string
	Concurrent         string
	MaxConcurrency     string
}

// Config controls how a diagnostic run executes. Values are immutable once
// handed to the orchestrator; a reload replaces the whole value.
//
// DefaultTemperature and Concurrent are pointers so an explicit zero or
// false in an overlay is distinguishable from an unset field.
type Config struct {
	DefaultModel       string   `toml:"default_model"`
	DefaultTemperature *float64 `toml:"default_temperature"`
	Timeout            string   `toml:"timeout"`
	Concurrent         *bool    `toml:"concurrent"`
	MaxConcurrency     int      `toml:"max_concurrency"`
	CheckpointInterval int      `toml:"checkpoint_interval"`
}

const defaultTemperature = 0.2

// Temperature returns the sampling temperature used when an owner has no agents.
func (c *Config) Temperature() float64 {
	if c.DefaultTemperature == nil {
		return defaultTemperature
	}
	return *c.DefaultTemperature
}

// IsConcurrent reports whether agent steps run in parallel.
func (c *Config) IsConcurrent() bool {
	return c.Concurrent != nil && *c.Concurrent
}

// TimeoutDuration parses the run deadline.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Model returns the model used when an owner has no agents.
func (c *Config) Model() models.ID {
	return models.ID(c.DefaultModel)
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
	if overlay.DefaultModel != "" {
		c.DefaultModel = overlay.DefaultModel
	}
	if overlay.DefaultTemperature != nil {
		c.DefaultTemperature = overlay.DefaultTemperature
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Concurrent != nil {
		c.Concurrent = overlay.Concurrent
	}
	if overlay.MaxConcurrency != 0 {
		c.MaxConcurrency = overlay.MaxConcurrency
	}
	if overlay.CheckpointInterval != 0 {
		c.CheckpointInterval = overlay.CheckpointInterval
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultModel == "" {
		c.DefaultModel = string(models.GPT4oMini)
	}
	if c.DefaultTemperature == nil {
		t := defaultTemperature
		c.DefaultTemperature = &t
	}
	if c.Concurrent == nil {
		c.Concurrent = new(bool)
	}
	if c.Timeout == "" {
		c.Timeout = "5m"
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.DefaultModel); v != "" {
		c.DefaultModel = v
	}
	if v := getenv(env.DefaultTemperature); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.DefaultTemperature = &f
		}
	}
	if v := getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
	if v := getenv(env.Concurrent); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Concurrent = &b
		}
	}
	if v := getenv(env.MaxConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrency = n
		}
	}
}

func (c *Config) validate() error {
	if err := c.Model().Validate(); err != nil {
		return fmt.Errorf("invalid default_model: %w", err)
	}
	if t := c.Temperature(); t < 0 || t > 2 {
		return fmt.Errorf("default_temperature must be between 0 and 2, got %v", t)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1")
	}
	if c.CheckpointInterval < 0 {
		return fmt.Errorf("checkpoint_interval must not be negative")
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
