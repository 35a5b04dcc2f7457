package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/pkg/pagination"
	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "audit"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Record inserts an entry only while system_settings.audit_log is on.
func (r *repo) Record(ctx context.Context, action, actor string) error {
	q := `
		INSERT INTO audit_logs (id, action, actor)
		SELECT $1, $2, $3
		WHERE EXISTS (SELECT 1 FROM system_settings WHERE id = 1 AND audit_log)`

	if _, err := r.db.ExecContext(ctx, q, uuid.New(), action, actor); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Action", "Actor")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audit entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

// Log records an entry through rec, logging instead of returning failures.
func Log(ctx context.Context, rec Recorder, logger *slog.Logger, action, actor string) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, action, actor); err != nil {
		logger.Warn("audit record failed", "action", action, "actor", actor, "error", err)
	}
}
