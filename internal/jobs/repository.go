package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/pkg/repository"
)

type store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a PostgreSQL backed job store.
func NewStore(db *sql.DB, logger *slog.Logger) Store {
	return &store{
		db:     db,
		logger: logger.With("store", "jobs"),
	}
}

func (s *store) Create(ctx context.Context, adName, requestedBy string) (*Job, error) {
	q := fmt.Sprintf(`
		INSERT INTO analysis_jobs (id, status, ad_name, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING %s`, columns)

	args := []any{uuid.New(), StatusQueued, adName, requestedBy, time.Now().UTC()}
	j, err := repository.QueryOne(ctx, s.db, q, args, scanJob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	s.logger.Info("job queued", "id", j.ID, "ad_name", j.AdName)
	return &j, nil
}

func (s *store) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	q := fmt.Sprintf(`SELECT %s FROM analysis_jobs WHERE id = $1`, columns)

	j, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanJob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &j, nil
}

func (s *store) Start(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusRunning, `
		UPDATE analysis_jobs
		SET status = 'running', updated_at = NOW()
		WHERE id = $1 AND status = 'queued'`,
		id,
	)
}

func (s *store) Complete(ctx context.Context, id, resultID uuid.UUID) error {
	return s.transition(ctx, id, StatusDone, `
		UPDATE analysis_jobs
		SET status = 'done', result_id = $2, error = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'running'`,
		id, resultID,
	)
}

func (s *store) Fail(ctx context.Context, id uuid.UUID, msg string) error {
	return s.transition(ctx, id, StatusFailed, `
		UPDATE analysis_jobs
		SET status = 'failed', error = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('queued', 'running')`,
		id, msg,
	)
}

func (s *store) FailStale(ctx context.Context, msg string, before time.Time) (int, error) {
	n, err := repository.ExecCount(ctx, s.db, `
		UPDATE analysis_jobs
		SET status = 'failed', error = $1, updated_at = NOW()
		WHERE status IN ('queued', 'running') AND created_at < $2`,
		msg, before,
	)
	if err != nil {
		return 0, fmt.Errorf("fail stale jobs: %w", err)
	}
	return int(n), nil
}

// transition runs a status-guarded update. When no row matches, the job is
// either missing or not in a status that allows the move.
func (s *store) transition(ctx context.Context, id uuid.UUID, to, q string, args ...any) error {
	err := repository.ExecExpectOne(ctx, s.db, q, args...)
	if err == nil {
		s.logger.Info("job status changed", "id", id, "status", to)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update job %s: %w", id, err)
	}

	j, findErr := s.Find(ctx, id)
	if findErr != nil {
		return findErr
	}
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, j.Status, to)
}
