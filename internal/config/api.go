package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/adscreen/pkg/formatting"
	"github.com/JaimeStill/adscreen/pkg/middleware"
	"github.com/JaimeStill/adscreen/pkg/openapi"
	"github.com/JaimeStill/adscreen/pkg/pagination"
)

const defaultMaxImageSize = 10 * 1024 * 1024

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ADSCREEN_CORS_ENABLED",
	Origins:          "ADSCREEN_CORS_ORIGINS",
	AllowedMethods:   "ADSCREEN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ADSCREEN_CORS_ALLOWED_HEADERS",
	AllowCredentials: "ADSCREEN_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ADSCREEN_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ADSCREEN_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ADSCREEN_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "ADSCREEN_OPENAPI_TITLE",
	Description: "ADSCREEN_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, submission limits, CORS, pagination,
// and OpenAPI document settings.
type APIConfig struct {
	BasePath     string                `toml:"base_path"`
	MaxImageSize string                `toml:"max_image_size"`
	CORS         middleware.CORSConfig `toml:"cors"`
	Pagination   pagination.Config     `toml:"pagination"`
	OpenAPI      openapi.Config        `toml:"openapi"`
}

// MaxImageSizeBytes returns the decoded image size limit in bytes.
func (c *APIConfig) MaxImageSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxImageSize)
	if err != nil || size <= 0 {
		return defaultMaxImageSize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxImageSize); err != nil {
		return fmt.Errorf("invalid max_image_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxImageSize != "" {
		c.MaxImageSize = overlay.MaxImageSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxImageSize == "" {
		c.MaxImageSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("ADSCREEN_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("ADSCREEN_API_MAX_IMAGE_SIZE"); v != "" {
		c.MaxImageSize = v
	}
}
