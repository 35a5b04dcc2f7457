// Package ocr extracts text and word geometry from advertisement images.
// The Cloud Vision provider runs DOCUMENT_TEXT_DETECTION and converts the
// response into a screening.Document for the matcher and box mapper.
package ocr

import (
	"context"
	"errors"
	"log/slog"

	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/screening"
)

// Provider errors.
var (
	ErrMissingCredentials = errors.New("ocr credentials are not configured")
	ErrUpstream           = errors.New("ocr request failed")
	ErrEmptyImage         = errors.New("image is empty")
)

// Provider detects text in an image.
type Provider interface {
	Detect(ctx context.Context, image []byte) (*screening.Document, error)
}

// New returns a Cloud Vision provider when credentials are configured and
// an unconfigured provider otherwise. Service construction does not
// contact the API.
func New(ctx context.Context, cfg *config.OCRConfig, logger *slog.Logger) (Provider, error) {
	logger = logger.With("system", "ocr")

	if !cfg.Configured() {
		logger.Warn("ocr credentials missing, detection disabled")
		return unconfigured{}, nil
	}

	return NewVision(ctx, cfg, logger)
}

type unconfigured struct{}

func (unconfigured) Detect(context.Context, []byte) (*screening.Document, error) {
	return nil, ErrMissingCredentials
}
