package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/adscreen/internal/config"
)

const (
	HeaderEmail = "X-User-Email"
	HeaderRole  = "X-User-Role"
)

// Resolver extracts the caller identity from a request.
type Resolver interface {
	Resolve(r *http.Request) (Identity, error)
}

// HeaderResolver trusts the identity headers set by an upstream gateway.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(r *http.Request) (Identity, error) {
	email := strings.TrimSpace(r.Header.Get(HeaderEmail))
	role := strings.TrimSpace(r.Header.Get(HeaderRole))
	if email == "" || role == "" {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{Email: email, Role: Role(role)}, nil
}

// OIDCResolver verifies bearer ID tokens against an OpenID provider and
// reads the email and role claims.
type OIDCResolver struct {
	verifier  *oidc.IDTokenVerifier
	roleClaim string
}

// NewOIDCResolver discovers the provider configuration at cfg.Issuer.
func NewOIDCResolver(ctx context.Context, cfg *config.AuthConfig) (*OIDCResolver, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	return &OIDCResolver{
		verifier:  provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		roleClaim: cfg.RoleClaim,
	}, nil
}

func (o *OIDCResolver) Resolve(r *http.Request) (Identity, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}

	token, err := o.verifier.Verify(r.Context(), raw)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	email, _ := claims["email"].(string)
	role, _ := claims[o.roleClaim].(string)
	if email == "" || role == "" {
		return Identity{}, ErrUnauthenticated
	}

	return Identity{Email: email, Role: Role(role)}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
