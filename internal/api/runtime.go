package api

import (
	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/infrastructure"
	"github.com/JaimeStill/adscreen/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// request authorizer.
type Runtime struct {
	*infrastructure.Infrastructure
	Authorizer *auth.Authorizer
	Pagination pagination.Config
	Config     *config.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure, authorizer *auth.Authorizer) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Catalog:   infra.Catalog,
			OCR:       infra.OCR,
			Judge:     infra.Judge,
			Metrics:   infra.Metrics,
		},
		Authorizer: authorizer,
		Pagination: cfg.API.Pagination,
		Config:     cfg,
	}
}
