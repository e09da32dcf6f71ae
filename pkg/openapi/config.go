package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config describes how the generated document presents the service.
// ServerURL is the externally reachable base URL; when empty the document
// advertises the address the server listens on.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	ServerURL   string `toml:"server_url"`
}

// ConfigEnv maps environment variable names for OpenAPI configuration.
type ConfigEnv struct {
	Title       string
	Description string
	ServerURL   string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Scribe API"
	}
	if env != nil {
		for name, dst := range map[string]*string{
			env.Title:       &c.Title,
			env.Description: &c.Description,
			env.ServerURL:   &c.ServerURL,
		} {
			if name == "" {
				continue
			}
			if v := os.Getenv(name); v != "" {
				*dst = v
			}
		}
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.ServerURL != "" {
		c.ServerURL = overlay.ServerURL
	}
}

// Info builds the document info block for the given service version.
func (c *Config) Info(version string) *Info {
	return &Info{Title: c.Title, Version: version, Description: c.Description}
}

// Servers returns the server list, preferring ServerURL over the listen address.
func (c *Config) Servers(addr string) []*Server {
	if c.ServerURL != "" {
		return []*Server{{URL: c.ServerURL}}
	}
	return []*Server{{URL: "http://" + addr}}
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return nil
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server_url must be an absolute http(s) URL, got %q", c.ServerURL)
	}
	return nil
}
