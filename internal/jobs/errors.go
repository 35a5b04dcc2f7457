package jobs

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/pipeline"
)

var (
	ErrNotFound          = errors.New("job not found")
	ErrDuplicate         = errors.New("job already exists")
	ErrInvalidTransition = errors.New("invalid job status transition")
	ErrShuttingDown      = errors.New("service is shutting down")
)

// MapHTTPStatus maps job and submission errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrShuttingDown):
		return http.StatusServiceUnavailable
	}
	return pipeline.MapHTTPStatus(err)
}
