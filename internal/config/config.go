// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/scribe/internal/diagnostics"
	"github.com/JaimeStill/scribe/internal/documents"
	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/internal/models"
	"github.com/JaimeStill/scribe/pkg/database"
	"github.com/JaimeStill/scribe/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvServiceShutdownTimeout overrides the service shutdown timeout.
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"

	// EnvServiceVersion overrides the reported service version.
	EnvServiceVersion = "SERVICE_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "DATABASE_URL",
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
	SSLMode:         "DATABASE_SSL_MODE",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var modelsEnv = &models.Env{
	MaxAttempts:    "MODELS_MAX_ATTEMPTS",
	InitialDelay:   "MODELS_INITIAL_DELAY",
	AttemptTimeout: "MODELS_ATTEMPT_TIMEOUT",
	OpenAIKey:      "OPENAI_API_KEY",
	OpenAIBaseURL:  "OPENAI_BASE_URL",
	GeminiKey:      "GEMINI_API_KEY",
}

var diagnosticsEnv = &diagnostics.Env{
	DefaultModel:       "DIAGNOSTICS_DEFAULT_MODEL",
	DefaultTemperature: "DIAGNOSTICS_DEFAULT_TEMPERATURE",
	Timeout:            "DIAGNOSTICS_TIMEOUT",
	Concurrent:         "DIAGNOSTICS_CONCURRENT",
	MaxConcurrency:     "DIAGNOSTICS_MAX_CONCURRENCY",
}

var historyEnv = &history.Env{
	MaxEntries:    "HISTORY_MAX_ENTRIES",
	MaxAge:        "HISTORY_MAX_AGE",
	SweepInterval: "HISTORY_SWEEP_INTERVAL",
}

var documentsEnv = &documents.Env{
	MaxSize: "DOCUMENTS_MAX_SIZE",
}

// Config represents the root service configuration.
type Config struct {
	Server          ServerConfig       `toml:"server"`
	Database        database.Config    `toml:"database"`
	Logging         logging.Config     `toml:"logging"`
	API             APIConfig          `toml:"api"`
	Models          models.Config      `toml:"models"`
	Diagnostics     diagnostics.Config `toml:"diagnostics"`
	History         history.Config     `toml:"history"`
	Documents       documents.Config   `toml:"documents"`
	ShutdownTimeout string             `toml:"shutdown_timeout"`
	Version         string             `toml:"version"`
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base configuration file, applies any environment-specific
// overlay, and finalizes the result.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom is Load with an explicit base file. The overlay is looked up next
// to the working directory as with Load.
func LoadFrom(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Models.Finalize(modelsEnv); err != nil {
		return fmt.Errorf("models: %w", err)
	}
	if err := c.Diagnostics.Finalize(diagnosticsEnv); err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}
	if err := c.History.Finalize(historyEnv); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := c.Documents.Finalize(documentsEnv); err != nil {
		return fmt.Errorf("documents: %w", err)
	}

	if c.Server.WriteTimeoutDuration() <= c.Diagnostics.TimeoutDuration() {
		return fmt.Errorf(
			"server.write_timeout (%s) must exceed diagnostics.timeout (%s)",
			c.Server.WriteTimeout, c.Diagnostics.Timeout,
		)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.API.Merge(&overlay.API)
	c.Models.Merge(&overlay.Models)
	c.Diagnostics.Merge(&overlay.Diagnostics)
	c.History.Merge(&overlay.History)
	c.Documents.Merge(&overlay.Documents)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
