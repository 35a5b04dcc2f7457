package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/pkg/handlers"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

// Authorizer guards handlers with role permissions.
type Authorizer struct {
	resolver Resolver
	logger   *slog.Logger
}

// New builds an Authorizer from cfg. With an issuer configured, the OIDC
// provider is discovered before returning.
func New(ctx context.Context, cfg *config.AuthConfig, logger *slog.Logger) (*Authorizer, error) {
	logger = logger.With("system", "auth")

	if !cfg.OIDC() {
		logger.Info("identity from request headers")
		return NewAuthorizer(HeaderResolver{}, logger), nil
	}

	resolver, err := NewOIDCResolver(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("oidc resolver: %w", err)
	}

	logger.Info("identity from oidc bearer tokens", "issuer", cfg.Issuer)
	return NewAuthorizer(resolver, logger), nil
}

// NewAuthorizer creates an Authorizer over an explicit resolver.
func NewAuthorizer(resolver Resolver, logger *slog.Logger) *Authorizer {
	return &Authorizer{resolver: resolver, logger: logger}
}

// Require wraps next so it only runs for callers whose role grants p.
// The resolved identity is stored on the request context.
func (a *Authorizer) Require(p Permission, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := a.resolver.Resolve(r)
		if err != nil {
			a.logger.Debug("identity rejected", "error", err)
			handlers.RespondError(w, a.logger, MapHTTPStatus(err), ErrUnauthenticated)
			return
		}

		if !id.Role.Can(p) {
			handlers.RespondError(w, a.logger, http.StatusForbidden, ErrForbidden)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// Guard returns a copy of g with every route, including those of child
// groups, wrapped by Require(p).
func (a *Authorizer) Guard(g routes.Group, p Permission) routes.Group {
	return routes.Wrap(g, func(next http.HandlerFunc) http.HandlerFunc {
		return a.Require(p, next)
	})
}
