package documents

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Env maps environment variable names for document configuration.
type Env struct {
	MaxSize string
}

// Config bounds the size of a single document's text, e.g. "1MB" or "512KiB".
type Config struct {
	MaxSize string `toml:"max_size"`
}

// MaxSizeBytes parses MaxSize. Finalize guarantees it is valid.
func (c *Config) MaxSizeBytes() int64 {
	n, _ := units.RAMInBytes(c.MaxSize)
	return n
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
}

func (c *Config) loadDefaults() {
	if c.MaxSize == "" {
		c.MaxSize = "1MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxSize != "" {
		if v := os.Getenv(env.MaxSize); v != "" {
			c.MaxSize = v
		}
	}
}

func (c *Config) validate() error {
	n, err := units.RAMInBytes(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	return nil
}
