package phrases

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/lifecycle"
	"github.com/JaimeStill/adscreen/pkg/pagination"
	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

type repo struct {
	db         *sql.DB
	catalog    *screening.Catalog
	audit      audit.Recorder
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a phrase repository implementing the System interface.
// Reference ids are validated against catalog.
func New(
	db *sql.DB,
	catalog *screening.Catalog,
	recorder audit.Recorder,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		catalog:    catalog,
		audit:      recorder,
		logger:     logger.With("system", "phrases"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.catalog, r.audit, r.logger, r.pagination)
}

func (r *repo) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		n, err := r.Seed(lc.Context(), screening.DefaultRules())
		if err != nil {
			r.logger.Error("phrase seed failed", "error", err)
			return
		}
		if n > 0 {
			r.logger.Info("default phrases seeded", "count", n)
		}
	})
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Phrase], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Phrase", "ViolationType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count phrases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPhrase)
	if err != nil {
		return nil, fmt.Errorf("query phrases: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Phrase, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPhrase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Phrase, error) {
	if err := cmd.Validate(r.catalog); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO forbidden_phrases (id, phrase, risk_level, violation_type, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	args := []any{uuid.New(), cmd.Phrase, cmd.RiskLevel, cmd.ViolationType, cmd.ReferenceID}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Phrase, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPhrase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("phrase created", "id", p.ID, "risk_level", p.RiskLevel)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Phrase, error) {
	if err := cmd.Validate(r.catalog); err != nil {
		return nil, err
	}

	q := `
		UPDATE forbidden_phrases
		SET phrase = $1,
			risk_level = $2,
			violation_type = COALESCE($3, violation_type),
			reference_id = COALESCE($4, reference_id),
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + columns

	args := []any{cmd.Phrase, cmd.RiskLevel, cmd.ViolationType, cmd.ReferenceID, id}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Phrase, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPhrase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("phrase updated", "id", p.ID, "risk_level", p.RiskLevel)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (*Phrase, error) {
	q := "DELETE FROM forbidden_phrases WHERE id = $1 RETURNING " + columns

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Phrase, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanPhrase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("phrase deleted", "id", id)
	return &p, nil
}

func (r *repo) Snapshot(ctx context.Context) ([]screening.Rule, error) {
	q := "SELECT phrase, risk_level, violation_type, reference_id FROM forbidden_phrases ORDER BY seq"

	rules, err := repository.QueryMany(ctx, r.db, q, nil, scanRule)
	if err != nil {
		return nil, fmt.Errorf("snapshot phrases: %w", err)
	}
	return rules, nil
}

func (r *repo) Seed(ctx context.Context, rules []screening.Rule) (int, error) {
	insert := `
		INSERT INTO forbidden_phrases (id, phrase, risk_level, violation_type, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phrase) DO NOTHING`

	backfill := `
		UPDATE forbidden_phrases
		SET violation_type = COALESCE(violation_type, $1),
			reference_id = COALESCE(reference_id, $2)
		WHERE phrase = $3`

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM forbidden_phrases").Scan(&count); err != nil {
			return 0, fmt.Errorf("count phrases: %w", err)
		}

		inserted := 0
		if count == 0 {
			for _, rule := range rules {
				res, err := tx.ExecContext(ctx, insert,
					uuid.New(), rule.Phrase, string(rule.RiskLevel),
					nullable(rule.ViolationType), nullable(rule.ReferenceID),
				)
				if err != nil {
					return 0, fmt.Errorf("seed phrase %q: %w", rule.Phrase, err)
				}
				if n, _ := res.RowsAffected(); n > 0 {
					inserted++
				}
			}
		}

		for _, rule := range rules {
			if _, err := tx.ExecContext(ctx, backfill,
				nullable(rule.ViolationType), nullable(rule.ReferenceID), rule.Phrase,
			); err != nil {
				return 0, fmt.Errorf("backfill phrase %q: %w", rule.Phrase, err)
			}
		}

		return inserted, nil
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
