package history

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Env maps environment variable names for history configuration.
type Env struct {
	MaxEntries    string
	MaxAge        string
	SweepInterval string
}

// Config controls retention. MaxEntries caps each owner's log; MaxAge and
// SweepInterval drive the periodic purge of old entries. An empty MaxAge
// disables the sweep.
type Config struct {
	MaxEntries    int    `toml:"max_entries"`
	MaxAge        string `toml:"max_age"`
	SweepInterval string `toml:"sweep_interval"`
}

func (c *Config) MaxAgeDuration() time.Duration {
	d, _ := time.ParseDuration(c.MaxAge)
	return d
}

func (c *Config) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
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
	if overlay.MaxEntries != 0 {
		c.MaxEntries = overlay.MaxEntries
	}
	if overlay.MaxAge != "" {
		c.MaxAge = overlay.MaxAge
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
}

func (c *Config) loadDefaults() {
	if c.MaxEntries == 0 {
		c.MaxEntries = 30
	}
	if c.MaxAge == "" {
		c.MaxAge = "720h"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "24h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxEntries != "" {
		if v := os.Getenv(env.MaxEntries); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxEntries = n
			}
		}
	}
	if env.MaxAge != "" {
		if v := os.Getenv(env.MaxAge); v != "" {
			c.MaxAge = v
		}
	}
	if env.SweepInterval != "" {
		if v := os.Getenv(env.SweepInterval); v != "" {
			c.SweepInterval = v
		}
	}
}

func (c *Config) validate() error {
	if c.MaxEntries < 1 {
		return fmt.Errorf("max_entries must be at least 1")
	}
	if _, err := time.ParseDuration(c.MaxAge); err != nil {
		return fmt.Errorf("invalid max_age: %w", err)
	}
	if d, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	return nil
}
