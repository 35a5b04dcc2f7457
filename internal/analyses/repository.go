package analyses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/pagination"
	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

type repo struct {
	db         *sql.DB
	signer     URLSigner
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis result repository implementing the System
// interface. Image URLs on returned results are issued by signer.
func New(db *sql.DB, signer URLSigner, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		signer:     signer,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Result, error) {
	sel := cmd.Selection
	if strings.TrimSpace(cmd.AdName) == "" || sel.RiskLevel.Rank() == 0 {
		return nil, ErrInvalidResult
	}

	boxes, err := encodeJSON(cmd.OCRBoxes)
	if err != nil {
		return nil, fmt.Errorf("encode ocr_boxes: %w", err)
	}
	findings, err := encodeJSON(sel.Findings)
	if err != nil {
		return nil, fmt.Errorf("encode findings: %w", err)
	}
	refs, err := encodeJSON(cmd.References)
	if err != nil {
		return nil, fmt.Errorf("encode references: %w", err)
	}

	q := `
		INSERT INTO analysis_results (
			id, ad_name, pass_score, risk_level, analysis_source, ai_error, status,
			image_file_id, ocr_full_text, ocr_boxes, findings, ai_rationale, "references", requested_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, ad_name, created_at, pass_score, risk_level, analysis_source, ai_error, status,
			image_file_id, ocr_full_text, ocr_boxes, findings, ai_rationale, "references", requested_by`

	args := []any{
		uuid.New(),
		cmd.AdName,
		sel.PassScore,
		string(sel.RiskLevel),
		string(sel.Source),
		sel.AIError,
		StatusDone,
		uuid.NullUUID{UUID: cmd.ImageFileID, Valid: cmd.ImageFileID != uuid.Nil},
		cmd.OCRFullText,
		boxes,
		findings,
		cmd.AIRationale,
		refs,
		cmd.RequestedBy,
	}

	res, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Result, error) {
		return repository.QueryOne(ctx, tx, q, args, scanResult)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"analysis stored",
		"id", res.ID,
		"risk_level", res.RiskLevel,
		"analysis_source", res.AnalysisSource,
	)
	r.sign(&res)
	return &res, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Result, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	res, err := repository.QueryOne(ctx, r.db, q, args, scanResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	r.sign(&res)
	return &res, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Result], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "AdName", "OCRFullText")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	results, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanResult)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	for i := range results {
		r.sign(&results[i])
	}

	result := pagination.NewPageResult(results, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Metrics(ctx context.Context) (*Metrics, error) {
	q := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE risk_level = 'high'),
			COUNT(*) FILTER (WHERE risk_level = 'medium'),
			COUNT(*) FILTER (WHERE risk_level = 'low')
		FROM analysis_results`

	var total int
	var c screening.TierCounts
	if err := r.db.QueryRowContext(ctx, q).Scan(&total, &c.High, &c.Medium, &c.Low); err != nil {
		return nil, fmt.Errorf("query analysis metrics: %w", err)
	}

	m := NewMetrics(total, c)
	return &m, nil
}

func (r *repo) sign(res *Result) {
	if res.ImageFileID == nil || r.signer == nil {
		return
	}
	u, err := r.signer.SignURL(*res.ImageFileID)
	if err != nil {
		r.logger.Warn("image url signing failed", "id", res.ID, "error", err)
		return
	}
	res.ImageURL = u
}
