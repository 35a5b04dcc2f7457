package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/adscreen/pkg/database"
	"github.com/JaimeStill/adscreen/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvAdscreenEnv             = "ADSCREEN_ENV"
	EnvAdscreenShutdownTimeout = "ADSCREEN_SHUTDOWN_TIMEOUT"
	EnvAdscreenVersion         = "ADSCREEN_VERSION"
)

var databaseEnv = &database.Env{
	Host:             "ADSCREEN_DB_HOST",
	Port:             "ADSCREEN_DB_PORT",
	Name:             "ADSCREEN_DB_NAME",
	User:             "ADSCREEN_DB_USER",
	Password:         "ADSCREEN_DB_PASSWORD",
	SSLMode:          "ADSCREEN_DB_SSL_MODE",
	ApplicationName:  "ADSCREEN_DB_APPLICATION_NAME",
	StatementTimeout: "ADSCREEN_DB_STATEMENT_TIMEOUT",
	MaxOpenConns:     "ADSCREEN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:     "ADSCREEN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime:  "ADSCREEN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:      "ADSCREEN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "ADSCREEN_STORAGE_CONTAINER_NAME",
	ConnectionString: "ADSCREEN_STORAGE_CONNECTION_STRING",
	AccountURL:       "ADSCREEN_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration for the adscreen service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	OCR             OCRConfig       `toml:"ocr"`
	Judge           JudgeConfig     `toml:"judge"`
	Jobs            JobsConfig      `toml:"jobs"`
	Files           FilesConfig     `toml:"files"`
	Auth            AuthConfig      `toml:"auth"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the ADSCREEN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvAdscreenEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.OCR.Merge(&overlay.OCR)
	c.Judge.Merge(&overlay.Judge)
	c.Jobs.Merge(&overlay.Jobs)
	c.Files.Merge(&overlay.Files)
	c.Auth.Merge(&overlay.Auth)
}

func (c *Config) finalize() error {
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
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.OCR.Finalize(); err != nil {
		return fmt.Errorf("ocr: %w", err)
	}
	if err := c.Judge.Finalize(); err != nil {
		return fmt.Errorf("judge: %w", err)
	}
	if err := c.Jobs.Finalize(); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	if err := c.Files.Finalize(); err != nil {
		return fmt.Errorf("files: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
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
	if v := os.Getenv(EnvAdscreenShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvAdscreenVersion); v != "" {
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
	if env := os.Getenv(EnvAdscreenEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
