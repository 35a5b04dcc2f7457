package analyses

import (
	"errors"
	"net/http"
)

// Domain errors for analysis result operations.
var (
	ErrNotFound      = errors.New("analysis not found")
	ErrDuplicate     = errors.New("analysis already exists")
	ErrInvalidResult = errors.New("invalid analysis result")
)

// MapHTTPStatus maps analysis domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidResult):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
