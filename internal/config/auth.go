package config

import (
	"fmt"
	"os"
)

const (
	EnvAuthIssuer    = "ADSCREEN_AUTH_ISSUER"
	EnvAuthClientID  = "ADSCREEN_AUTH_CLIENT_ID"
	EnvAuthRoleClaim = "ADSCREEN_AUTH_ROLE_CLAIM"
)

// AuthConfig holds identity resolution parameters. With no Issuer,
// identity is read from the X-User-Email and X-User-Role headers.
// With an Issuer, requests must carry an OIDC bearer ID token.
type AuthConfig struct {
	Issuer    string `toml:"issuer"`
	ClientID  string `toml:"client_id"`
	RoleClaim string `toml:"role_claim"`
}

// OIDC reports whether bearer token verification is enabled.
func (c *AuthConfig) OIDC() bool {
	return c.Issuer != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.RoleClaim != "" {
		c.RoleClaim = overlay.RoleClaim
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.RoleClaim == "" {
		c.RoleClaim = "role"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvAuthRoleClaim); v != "" {
		c.RoleClaim = v
	}
}

func (c *AuthConfig) validate() error {
	if c.Issuer != "" && c.ClientID == "" {
		return fmt.Errorf("client_id required when issuer is set")
	}
	return nil
}
