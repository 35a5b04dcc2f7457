// Package judge asks a generative model for a compliance judgment of an
// advertisement image and for a short reviewer-facing rationale.
// Responses are returned as raw text; normalization happens in screening.
package judge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/screening"
)

// Provider errors.
var (
	ErrMissingCredentials = errors.New("judge credentials are not configured")
	ErrEmptyResponse      = errors.New("judge returned an empty response")
)

// Request carries the inputs of a compliance judgment.
type Request struct {
	AdName   string
	Image    []byte
	MIMEType string
	OCRText  string
}

// SummaryRequest carries the inputs of a rationale summary.
type SummaryRequest struct {
	AdName       string
	OCRText      string
	Findings     []screening.Finding
	LegalSummary string
}

// Provider produces raw model output for judgments and summaries.
type Provider interface {
	Judge(ctx context.Context, req Request) (string, error)
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// New returns a Gemini provider when an API key is configured and an
// unconfigured provider otherwise.
func New(ctx context.Context, cfg *config.JudgeConfig, catalog *screening.Catalog, logger *slog.Logger) (Provider, error) {
	logger = logger.With("system", "judge")

	if !cfg.Configured() {
		logger.Warn("judge api key missing, ai judgment disabled")
		return unconfigured{}, nil
	}

	return NewGemini(ctx, cfg, catalog, logger, Options{})
}

type unconfigured struct{}

func (unconfigured) Judge(context.Context, Request) (string, error) {
	return "", ErrMissingCredentials
}

func (unconfigured) Summarize(context.Context, SummaryRequest) (string, error) {
	return "", ErrMissingCredentials
}
