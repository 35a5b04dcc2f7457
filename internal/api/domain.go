package api

import (
	"fmt"

	"github.com/JaimeStill/adscreen/internal/analyses"
	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/files"
	"github.com/JaimeStill/adscreen/internal/jobs"
	"github.com/JaimeStill/adscreen/internal/phrases"
	"github.com/JaimeStill/adscreen/internal/pipeline"
	"github.com/JaimeStill/adscreen/internal/settings"
	"github.com/JaimeStill/adscreen/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Audit    audit.System
	Settings settings.System
	Users    users.System
	Phrases  phrases.System
	Files    files.System
	Analyses analyses.System
	Pipeline pipeline.System
	Jobs     jobs.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()
	cfg := runtime.Config

	auditSystem := audit.New(db, runtime.Logger, runtime.Pagination)

	signer, err := files.NewSigner(cfg.Files.SigningSecret, cfg.Files.URLTTLDuration(), cfg.API.BasePath)
	if err != nil {
		return nil, fmt.Errorf("files signer: %w", err)
	}
	filesSystem := files.New(db, runtime.Storage, signer, runtime.Logger)

	phrasesSystem := phrases.New(db, runtime.Catalog, auditSystem, runtime.Logger, runtime.Pagination)
	analysesSystem := analyses.New(db, filesSystem, runtime.Logger, runtime.Pagination)

	pipelineSystem := pipeline.New(pipeline.Deps{
		Files:        filesSystem,
		Rules:        phrasesSystem,
		Results:      analysesSystem,
		OCR:          runtime.OCR,
		Judge:        runtime.Judge,
		Catalog:      runtime.Catalog,
		Metrics:      runtime.Metrics,
		Recorder:     auditSystem,
		Logger:       runtime.Logger,
		MaxImageSize: cfg.API.MaxImageSizeBytes(),
	})

	jobsSystem := jobs.New(jobs.Deps{
		Store:        jobs.NewStore(db, runtime.Logger),
		Analyzer:     pipelineSystem,
		Results:      analysesSystem,
		Config:       &cfg.Jobs,
		Metrics:      runtime.Metrics,
		Recorder:     auditSystem,
		Logger:       runtime.Logger,
		MaxImageSize: cfg.API.MaxImageSizeBytes(),
	})

	return &Domain{
		Audit:    auditSystem,
		Settings: settings.New(db, auditSystem, runtime.Logger),
		Users:    users.New(db, auditSystem, runtime.Logger, runtime.Pagination),
		Phrases:  phrasesSystem,
		Files:    filesSystem,
		Analyses: analysesSystem,
		Pipeline: pipelineSystem,
		Jobs:     jobsSystem,
	}, nil
}

// Start registers the lifecycle hooks of domain systems.
func (d *Domain) Start(runtime *Runtime) error {
	if err := d.Phrases.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("phrases start failed: %w", err)
	}
	if err := d.Jobs.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("jobs start failed: %w", err)
	}
	return nil
}
