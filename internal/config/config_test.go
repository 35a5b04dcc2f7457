package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/adscreen/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "adscreen"
user = "adscreen"
password = "adscreen"
ssl_mode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = "15m"
conn_timeout = "5s"

[storage]
container_name = "ad-images"
connection_string = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

[api]
base_path = "/api"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50

[ocr]
language_hints = ["ko", "en"]

[judge]
model = "gemini-2.5-pro"

[jobs]
delay = "500ms"
max_concurrent = 2
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[jobs]
max_concurrent = 8
`

const minimalConfig = `
[database]
name = "adscreen"
user = "adscreen"

[storage]
connection_string = "conn"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func loadFrom(t *testing.T, content string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, content)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return cfg
}

// clearProviderEnv keeps host credentials from leaking into provider assertions.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GOOGLE_VISION_API_KEY", "GOOGLE_API_KEY", "GOOGLE_APPLICATION_CREDENTIALS",
		"OCR_LANGUAGE_HINTS", "GEMINI_API_KEY",
		config.EnvOCRAPIKey, config.EnvOCRCredentialsFile, config.EnvJudgeAPIKey,
	} {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	clearProviderEnv(t)
	cfg := loadFrom(t, baseConfig)

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.Storage.ContainerName != "ad-images" {
		t.Errorf("storage container: got %s, want ad-images", cfg.Storage.ContainerName)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if !slices.Equal(cfg.OCR.LanguageHints, []string{"ko", "en"}) {
		t.Errorf("ocr language_hints: got %v", cfg.OCR.LanguageHints)
	}
	if cfg.Judge.Model != "gemini-2.5-pro" {
		t.Errorf("judge model: got %s", cfg.Judge.Model)
	}
	if cfg.Jobs.DelayDuration() != 500*time.Millisecond {
		t.Errorf("jobs delay: got %v, want 500ms", cfg.Jobs.DelayDuration())
	}
	if cfg.Jobs.MaxConcurrent != 2 {
		t.Errorf("jobs max_concurrent: got %d, want 2", cfg.Jobs.MaxConcurrent)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvAdscreenEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if cfg.Jobs.MaxConcurrent != 8 {
		t.Errorf("jobs max_concurrent: got %d, want 8 (from overlay)", cfg.Jobs.MaxConcurrent)
	}
	if cfg.Jobs.Delay != "500ms" {
		t.Errorf("jobs delay: got %s, want 500ms (from base)", cfg.Jobs.Delay)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv(config.EnvAdscreenVersion, "2.0.0")
	t.Setenv(config.EnvServerPort, "3000")
	t.Setenv(config.EnvJobsDelay, "1s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Jobs.DelayDuration() != time.Second {
		t.Errorf("jobs delay: got %v, want 1s", cfg.Jobs.DelayDuration())
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("ADSCREEN_DB_NAME", "testdb")
	t.Setenv("ADSCREEN_DB_USER", "testuser")
	t.Setenv("ADSCREEN_STORAGE_CONNECTION_STRING", "conn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.Storage.ConnectionString != "conn" {
		t.Errorf("storage conn from env: got %s, want conn", cfg.Storage.ConnectionString)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, `[server`)
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestEnv(t *testing.T) {
	cfg := &config.Config{}

	t.Setenv(config.EnvAdscreenEnv, "")
	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}

	t.Setenv(config.EnvAdscreenEnv, "production")
	if cfg.Env() != "production" {
		t.Errorf("env: got %s, want production", cfg.Env())
	}
}

func TestDefaults(t *testing.T) {
	clearProviderEnv(t)
	cfg := loadFrom(t, minimalConfig)

	if d := cfg.ShutdownTimeoutDuration(); d != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", d)
	}
	if addr := cfg.Server.Addr(); addr != "0.0.0.0:8080" {
		t.Errorf("addr: got %s, want 0.0.0.0:8080", addr)
	}
	if cfg.API.Pagination.DefaultPageSize != 20 || cfg.API.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination: got %+v", cfg.API.Pagination)
	}
	if got := cfg.API.MaxImageSizeBytes(); got != 10*1024*1024 {
		t.Errorf("max image size: got %d, want 10MB", got)
	}
	if cfg.API.OpenAPI.Title != "adscreen API" {
		t.Errorf("openapi title: got %s", cfg.API.OpenAPI.Title)
	}
	if !slices.Equal(cfg.OCR.LanguageHints, []string{"ko"}) {
		t.Errorf("ocr language_hints: got %v, want [ko]", cfg.OCR.LanguageHints)
	}
	if cfg.OCR.TimeoutDuration() != 30*time.Second {
		t.Errorf("ocr timeout: got %v", cfg.OCR.TimeoutDuration())
	}
	if cfg.OCR.Configured() || cfg.Judge.Configured() {
		t.Error("providers should be unconfigured without credentials")
	}
	if cfg.Judge.Model != "gemini-2.5-flash" {
		t.Errorf("judge model: got %s", cfg.Judge.Model)
	}
	if cfg.Judge.Temperature != nil {
		t.Errorf("judge temperature: got %v, want nil", *cfg.Judge.Temperature)
	}
	if cfg.Jobs.DelayDuration() != 300*time.Millisecond || cfg.Jobs.MaxConcurrent != 4 {
		t.Errorf("jobs: got %+v", cfg.Jobs)
	}
	if cfg.Files.URLTTLDuration() != time.Hour {
		t.Errorf("files url_ttl: got %v, want 1h", cfg.Files.URLTTLDuration())
	}
	if cfg.Auth.OIDC() || cfg.Auth.RoleClaim != "role" {
		t.Errorf("auth: got %+v", cfg.Auth)
	}
}

func TestProviderCredentialFallbacks(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("GOOGLE_VISION_API_KEY", "vision-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("OCR_LANGUAGE_HINTS", " ko , ja ,")

	cfg := loadFrom(t, minimalConfig)

	if cfg.OCR.APIKey != "vision-key" {
		t.Errorf("ocr api key: got %s, want vision-key", cfg.OCR.APIKey)
	}
	if !slices.Equal(cfg.OCR.LanguageHints, []string{"ko", "ja"}) {
		t.Errorf("ocr language_hints: got %v", cfg.OCR.LanguageHints)
	}
	if cfg.Judge.APIKey != "gemini-key" {
		t.Errorf("judge api key: got %s, want gemini-key", cfg.Judge.APIKey)
	}

	t.Setenv(config.EnvOCRAPIKey, "primary")
	cfg = loadFrom(t, minimalConfig)
	if cfg.OCR.APIKey != "primary" {
		t.Errorf("ocr api key: got %s, want primary", cfg.OCR.APIKey)
	}
}

func TestMaxImageSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		size string
		want int64
	}{
		{"valid 10MB", "10MB", 10 * 1024 * 1024},
		{"valid 512KB", "512KB", 512 * 1024},
		{"invalid falls back to 10MB", "bad", 10 * 1024 * 1024},
		{"empty falls back to 10MB", "", 10 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.APIConfig{MaxImageSize: tt.size}
			if got := cfg.MaxImageSizeBytes(); got != tt.want {
				t.Errorf("MaxImageSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		extra   string
		wantErr string
	}{
		{"invalid port", "[server]\nport = 99999\n", "invalid port"},
		{"invalid read_timeout", "[server]\nread_timeout = \"bad\"\n", "invalid read_timeout"},
		{"invalid max image size", "[api]\nmax_image_size = \"lots\"\n", "invalid max_image_size"},
		{"invalid ocr timeout", "[ocr]\ntimeout = \"soon\"\n", "invalid timeout"},
		{"judge temperature out of range", "[judge]\ntemperature = 3.5\n", "temperature"},
		{"zero concurrency", "[jobs]\nmax_concurrent = -1\n", "max_concurrent"},
		{"negative delay", "[jobs]\ndelay = \"-1s\"\n", "delay"},
		{"short signing secret", "[files]\nsigning_secret = \"short\"\n", "signing_secret"},
		{"issuer without client", "[auth]\nissuer = \"https://login.example.com\"\n", "client_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, minimalConfig+"\n"+tt.extra)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}
