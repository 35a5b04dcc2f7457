package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvJobsDelay         = "ADSCREEN_JOBS_DELAY"
	EnvJobsMaxConcurrent = "ADSCREEN_JOBS_MAX_CONCURRENT"
)

// JobsConfig holds asynchronous analysis job scheduling parameters.
type JobsConfig struct {
	Delay         string `toml:"delay"`
	MaxConcurrent int    `toml:"max_concurrent"`
}

// DelayDuration returns Delay as a time.Duration.
func (c *JobsConfig) DelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.Delay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *JobsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *JobsConfig) Merge(overlay *JobsConfig) {
	if overlay.Delay != "" {
		c.Delay = overlay.Delay
	}
	if overlay.MaxConcurrent != 0 {
		c.MaxConcurrent = overlay.MaxConcurrent
	}
}

func (c *JobsConfig) loadDefaults() {
	if c.Delay == "" {
		c.Delay = "300ms"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 4
	}
}

func (c *JobsConfig) loadEnv() {
	if v := os.Getenv(EnvJobsDelay); v != "" {
		c.Delay = v
	}
	if v := os.Getenv(EnvJobsMaxConcurrent); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
}

func (c *JobsConfig) validate() error {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return fmt.Errorf("invalid delay: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("delay must not be negative")
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1")
	}
	return nil
}
