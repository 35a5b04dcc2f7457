package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvJudgeAPIKey      = "ADSCREEN_JUDGE_API_KEY"
	EnvJudgeModel       = "ADSCREEN_JUDGE_MODEL"
	EnvJudgeTimeout     = "ADSCREEN_JUDGE_TIMEOUT"
	EnvJudgeTemperature = "ADSCREEN_JUDGE_TEMPERATURE"
)

var judgeAPIKeyFallbacks = []string{"GEMINI_API_KEY"}

// JudgeConfig holds generative model parameters for the compliance judge
// and the rationale summarizer. Temperature is optional; nil leaves the
// model default in place.
type JudgeConfig struct {
	APIKey      string   `toml:"api_key"`
	Model       string   `toml:"model"`
	Timeout     string   `toml:"timeout"`
	Temperature *float32 `toml:"temperature"`
}

// Configured reports whether an API key is available.
func (c *JudgeConfig) Configured() bool {
	return c.APIKey != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *JudgeConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *JudgeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *JudgeConfig) Merge(overlay *JudgeConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Temperature != nil {
		c.Temperature = overlay.Temperature
	}
}

func (c *JudgeConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *JudgeConfig) loadEnv() {
	if v := firstEnv(EnvJudgeAPIKey, judgeAPIKeyFallbacks...); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvJudgeModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvJudgeTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvJudgeTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 32); err == nil {
			temp := float32(t)
			c.Temperature = &temp
		}
	}
}

func (c *JudgeConfig) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}
