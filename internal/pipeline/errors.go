package pipeline

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/analyses"
	"github.com/JaimeStill/adscreen/internal/ocr"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

// Submission errors, reported before any work starts.
var (
	ErrMissingAdName = errors.New("ad_name is required")
	ErrMissingImage  = errors.New("image is required")
	ErrInvalidImage  = errors.New("image must be a base64 encoded image or data URI")
	ErrImageTooLarge = errors.New("image exceeds maximum size")
	ErrInvalidBody   = errors.New("request body must be JSON {ad_name, image} or a multipart form")
)

// Pipeline stages named in StageError.
const (
	StageStorage = "storage"
	StageRules   = "rules"
	StageOCR     = "ocr"
	StageRecord  = "record"
)

// StageError is a fatal pipeline failure at a named stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Message returns the text recorded for a failed analysis: the underlying
// cause of a StageError without the stage prefix, or err's text otherwise.
func Message(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}

// Stage returns the stage of a StageError in err's chain, or "unknown".
func Stage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return "unknown"
}

// MapHTTPStatus maps submission and pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingAdName),
		errors.Is(err, ErrMissingImage),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ocr.ErrEmptyImage),
		errors.Is(err, analyses.ErrInvalidResult):
		return http.StatusBadRequest
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, repository.ErrConstraint):
		return http.StatusConflict
	case errors.Is(err, ocr.ErrMissingCredentials):
		return http.StatusServiceUnavailable
	case errors.Is(err, ocr.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
