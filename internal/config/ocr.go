package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	EnvOCRAPIKey          = "ADSCREEN_OCR_API_KEY"
	EnvOCRCredentialsFile = "ADSCREEN_OCR_CREDENTIALS_FILE"
	EnvOCRLanguageHints   = "ADSCREEN_OCR_LANGUAGE_HINTS"
	EnvOCRTimeout         = "ADSCREEN_OCR_TIMEOUT"
)

// Fallback variables honored when the ADSCREEN_ names are unset, in lookup order.
var (
	ocrAPIKeyFallbacks     = []string{"GOOGLE_VISION_API_KEY", "GOOGLE_API_KEY"}
	ocrCredentialFallbacks = []string{"GOOGLE_APPLICATION_CREDENTIALS"}
	ocrHintFallbacks       = []string{"OCR_LANGUAGE_HINTS"}
)

// OCRConfig holds Cloud Vision text detection parameters.
// Either APIKey or CredentialsFile enables the provider; with neither,
// detection fails with a missing credentials error.
type OCRConfig struct {
	APIKey          string   `toml:"api_key"`
	CredentialsFile string   `toml:"credentials_file"`
	LanguageHints   []string `toml:"language_hints"`
	Timeout         string   `toml:"timeout"`
}

// Configured reports whether any credential source is set.
func (c *OCRConfig) Configured() bool {
	return c.APIKey != "" || c.CredentialsFile != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *OCRConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OCRConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OCRConfig) Merge(overlay *OCRConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.CredentialsFile != "" {
		c.CredentialsFile = overlay.CredentialsFile
	}
	if len(overlay.LanguageHints) > 0 {
		c.LanguageHints = overlay.LanguageHints
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *OCRConfig) loadDefaults() {
	if len(c.LanguageHints) == 0 {
		c.LanguageHints = []string{"ko"}
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *OCRConfig) loadEnv() {
	if v := firstEnv(EnvOCRAPIKey, ocrAPIKeyFallbacks...); v != "" {
		c.APIKey = v
	}
	if v := firstEnv(EnvOCRCredentialsFile, ocrCredentialFallbacks...); v != "" {
		c.CredentialsFile = v
	}
	if v := firstEnv(EnvOCRLanguageHints, ocrHintFallbacks...); v != "" {
		if hints := splitList(v); len(hints) > 0 {
			c.LanguageHints = hints
		}
	}
	if v := os.Getenv(EnvOCRTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *OCRConfig) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func firstEnv(primary string, fallbacks ...string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	for _, name := range fallbacks {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
