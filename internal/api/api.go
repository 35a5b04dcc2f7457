// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/infrastructure"
	"github.com/JaimeStill/adscreen/pkg/middleware"
	"github.com/JaimeStill/adscreen/pkg/module"
	"github.com/JaimeStill/adscreen/pkg/openapi"
)

// Module is the mounted API module together with the domain systems
// behind it.
type Module struct {
	*module.Module
	Domain  *Domain
	runtime *Runtime
}

// NewModule creates the API module with all domain handlers and middleware.
// Domain lifecycle hooks are registered by Start.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, authorizer *auth.Authorizer) (*Module, error) {
	runtime := NewRuntime(cfg, infra, authorizer)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	spec, err := openapi.MarshalJSON(NewSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("openapi spec: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime, spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))

	return &Module{Module: m, Domain: domain, runtime: runtime}, nil
}

// Start registers the lifecycle hooks of the domain systems: the default
// phrase seed, the stale job sweep, and the job drain on shutdown.
func (m *Module) Start() error {
	return m.Domain.Start(m.runtime)
}
