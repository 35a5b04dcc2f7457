package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvFilesSigningSecret = "ADSCREEN_FILES_SIGNING_SECRET"
	EnvFilesURLTTL        = "ADSCREEN_FILES_URL_TTL"
)

// FilesConfig holds signed image URL parameters. An empty SigningSecret
// makes the files system generate a per-process secret, so issued URLs
// stop verifying after a restart.
type FilesConfig struct {
	SigningSecret string `toml:"signing_secret"`
	URLTTL        string `toml:"url_ttl"`
}

// URLTTLDuration returns URLTTL as a time.Duration.
func (c *FilesConfig) URLTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.URLTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *FilesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *FilesConfig) Merge(overlay *FilesConfig) {
	if overlay.SigningSecret != "" {
		c.SigningSecret = overlay.SigningSecret
	}
	if overlay.URLTTL != "" {
		c.URLTTL = overlay.URLTTL
	}
}

func (c *FilesConfig) loadDefaults() {
	if c.URLTTL == "" {
		c.URLTTL = "1h"
	}
}

func (c *FilesConfig) loadEnv() {
	if v := os.Getenv(EnvFilesSigningSecret); v != "" {
		c.SigningSecret = v
	}
	if v := os.Getenv(EnvFilesURLTTL); v != "" {
		c.URLTTL = v
	}
}

func (c *FilesConfig) validate() error {
	d, err := time.ParseDuration(c.URLTTL)
	if err != nil {
		return fmt.Errorf("invalid url_ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("url_ttl must be positive")
	}
	if c.SigningSecret != "" && len(c.SigningSecret) < 16 {
		return fmt.Errorf("signing_secret must be at least 16 bytes")
	}
	return nil
}
