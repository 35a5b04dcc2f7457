package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/api"
	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/infrastructure"
	"github.com/JaimeStill/adscreen/pkg/middleware"
	"github.com/JaimeStill/adscreen/pkg/module"
	"github.com/JaimeStill/adscreen/web/scalar"
)

type Modules struct {
	API    *api.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config, authorizer *auth.Authorizer) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra, authorizer)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API.Module)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	router.Handle("GET /metrics", infra.Metrics.Handler())

	return router
}
