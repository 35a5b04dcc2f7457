// Package pipeline runs one advertisement analysis end to end: store the
// image, recognize text, match rules, ask the judge, select a candidate,
// resolve references, compose the rationale, and record the result.
// The synchronous endpoint and the job runner both call Analyze.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/adscreen/internal/analyses"
	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/files"
	"github.com/JaimeStill/adscreen/internal/judge"
	"github.com/JaimeStill/adscreen/internal/ocr"
	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/internal/telemetry"
)

// FileStore persists submitted images.
type FileStore interface {
	Save(ctx context.Context, data []byte, contentType string) (*files.File, error)
}

// RuleSource provides the forbidden phrase rules for one run.
type RuleSource interface {
	Snapshot(ctx context.Context) ([]screening.Rule, error)
}

// ResultStore records completed analyses.
type ResultStore interface {
	Create(ctx context.Context, cmd analyses.CreateCommand) (*analyses.Result, error)
}

// Deps are the collaborators of the pipeline.
type Deps struct {
	Files        FileStore
	Rules        RuleSource
	Results      ResultStore
	OCR          ocr.Provider
	Judge        judge.Provider
	Catalog      *screening.Catalog
	Metrics      *telemetry.Metrics
	Recorder     audit.Recorder
	Logger       *slog.Logger
	MaxImageSize int64
}

// System runs analyses.
type System interface {
	Handler() *Handler
	// Analyze runs the full pipeline for sub. Storage, rule, OCR, and
	// record failures are returned as *StageError; judge and rationale
	// failures are recovered and recorded on the result.
	Analyze(ctx context.Context, sub Submission, requestedBy string) (*analyses.Result, error)
}

type pipeline struct {
	Deps
	logger *slog.Logger
}

// New creates the pipeline system.
func New(deps Deps) System {
	return &pipeline{
		Deps:   deps,
		logger: deps.Logger.With("system", "pipeline"),
	}
}

func (p *pipeline) Handler() *Handler {
	return NewHandler(p, p.Recorder, p.logger, p.MaxImageSize)
}

func (p *pipeline) Analyze(ctx context.Context, sub Submission, requestedBy string) (*analyses.Result, error) {
	start := time.Now()

	result, err := p.run(ctx, sub, requestedBy)
	if err != nil {
		stage := Stage(err)
		p.Metrics.AnalysisFailures.WithLabelValues(stage).Inc()
		p.logger.Error("analysis failed", "ad_name", sub.AdName, "stage", stage, "error", err)
		audit.Log(ctx, p.Recorder, p.logger, fmt.Sprintf("analysis failed: %s", sub.AdName), requestedBy)
		return nil, err
	}

	p.Metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	p.Metrics.AnalysesTotal.WithLabelValues(string(result.AnalysisSource), string(result.RiskLevel)).Inc()
	for _, f := range result.Findings {
		p.Metrics.FindingsTotal.WithLabelValues(string(f.RiskLevel)).Inc()
	}

	p.logger.Info(
		"analysis completed",
		"id", result.ID,
		"ad_name", result.AdName,
		"source", result.AnalysisSource,
		"risk_level", result.RiskLevel,
		"pass_score", result.PassScore,
		"findings", len(result.Findings),
		"duration", time.Since(start),
	)
	audit.Log(ctx, p.Recorder, p.logger, fmt.Sprintf("analysis completed: %s", sub.AdName), requestedBy)

	return result, nil
}

func (p *pipeline) run(ctx context.Context, sub Submission, requestedBy string) (*analyses.Result, error) {
	file, err := p.Files.Save(ctx, sub.Image, sub.MIMEType)
	if err != nil {
		return nil, &StageError{Stage: StageStorage, Err: err}
	}

	rules, err := p.Rules.Snapshot(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageRules, Err: err}
	}

	doc, err := p.OCR.Detect(ctx, sub.Image)
	if err != nil {
		return nil, &StageError{Stage: StageOCR, Err: err}
	}

	text := doc.Text()
	matcher := screening.NewMatcher(rules)
	candidate := matcher.Candidate(text)
	boxes := matcher.MapBoxes(doc)

	judged, judgeErr := p.judge(ctx, sub, text)
	sel := screening.Select(candidate, judged, judgeErr)

	references := p.Catalog.Resolve(sel.Findings)
	legal := screening.LegalSummary(sel.Findings)
	rationale := screening.ComposeRationale(ctx, sel.AIRationale, legal, func(ctx context.Context) (string, error) {
		return p.Judge.Summarize(ctx, judge.SummaryRequest{
			AdName:       sub.AdName,
			OCRText:      text,
			Findings:     sel.Findings,
			LegalSummary: legal,
		})
	})

	result, err := p.Results.Create(ctx, analyses.CreateCommand{
		AdName:      sub.AdName,
		Selection:   sel,
		ImageFileID: file.ID,
		OCRFullText: text,
		OCRBoxes:    boxes,
		AIRationale: rationale,
		References:  references,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return nil, &StageError{Stage: StageRecord, Err: err}
	}

	return result, nil
}

func (p *pipeline) judge(ctx context.Context, sub Submission, text string) (*screening.Judgment, error) {
	raw, err := p.Judge.Judge(ctx, judge.Request{
		AdName:   sub.AdName,
		Image:    sub.Image,
		MIMEType: sub.MIMEType,
		OCRText:  text,
	})
	if err == nil {
		var judged *screening.Judgment
		judged, err = screening.ParseJudgment(raw, p.Catalog)
		if err == nil {
			return judged, nil
		}
	}

	p.Metrics.JudgeFailures.Inc()
	p.logger.Warn("judge unavailable, using ocr candidate", "ad_name", sub.AdName, "error", err)
	return nil, err
}
