// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, OCR, judge)
// that domain systems require, plus the metrics registry.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/judge"
	"github.com/JaimeStill/adscreen/internal/ocr"
	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/internal/telemetry"
	"github.com/JaimeStill/adscreen/pkg/database"
	"github.com/JaimeStill/adscreen/pkg/lifecycle"
	"github.com/JaimeStill/adscreen/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// External provider clients are built once here and injected.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Catalog   *screening.Catalog
	OCR       ocr.Provider
	Judge     judge.Provider
	Metrics   *telemetry.Metrics
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	catalog := screening.DefaultCatalog()

	ocrProvider, err := ocr.New(lc.Context(), &cfg.OCR, logger)
	if err != nil {
		return nil, fmt.Errorf("ocr init failed: %w", err)
	}

	judgeProvider, err := judge.New(lc.Context(), &cfg.Judge, catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("judge init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Catalog:   catalog,
		OCR:       ocrProvider,
		Judge:     judgeProvider,
		Metrics:   telemetry.New(),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
