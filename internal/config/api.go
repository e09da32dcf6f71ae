package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/scribe/pkg/middleware"
	"github.com/JaimeStill/scribe/pkg/openapi"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/docker/go-units"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
	ServerURL:   "API_OPENAPI_SERVER_URL",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds settings shared by every HTTP endpoint.
type APIConfig struct {
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
	MaxBodySize string                `toml:"max_body_size"`
}

// MaxBodyBytes parses MaxBodySize, e.g. "2MB".
func (c *APIConfig) MaxBodyBytes() int64 {
	n, _ := units.RAMInBytes(c.MaxBodySize)
	return n
}

func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := units.RAMInBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.MaxBodySize == "" {
		c.MaxBodySize = "2MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
