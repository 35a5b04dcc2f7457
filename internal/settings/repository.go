package settings

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

type repo struct {
	db     *sql.DB
	audit  audit.Recorder
	logger *slog.Logger
}

// New creates a settings repository implementing the System interface.
func New(db *sql.DB, recorder audit.Recorder, logger *slog.Logger) System {
	return &repo{
		db:     db,
		audit:  recorder,
		logger: logger.With("system", "settings"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.audit, r.logger)
}

func (r *repo) Get(ctx context.Context) (*Settings, error) {
	q := "SELECT audit_log, retention, updated_at FROM system_settings WHERE id = 1"

	s, err := repository.QueryOne(ctx, r.db, q, nil, scanSettings)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &s, nil
}

func (r *repo) Update(ctx context.Context, cmd UpdateCommand) (*Settings, error) {
	if cmd.Retention != nil {
		if err := ValidateRetention(*cmd.Retention); err != nil {
			return nil, err
		}
	}

	q := `
		UPDATE system_settings
		SET audit_log = COALESCE($1, audit_log),
			retention = COALESCE($2, retention),
			updated_at = NOW()
		WHERE id = 1
		RETURNING audit_log, retention, updated_at`

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Settings, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.AuditLog, cmd.Retention}, scanSettings)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("settings updated", "audit_log", s.AuditLog, "retention", s.Retention)
	return &s, nil
}

func scanSettings(s repository.Scanner) (Settings, error) {
	var v Settings
	err := s.Scan(&v.AuditLog, &v.Retention, &v.UpdatedAt)
	return v, err
}
