package files

import (
	"errors"
	"net/http"
)

// Domain errors for file operations.
var (
	ErrNotFound     = errors.New("file not found")
	ErrDuplicate    = errors.New("file already exists")
	ErrEmptyFile    = errors.New("file is empty")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// MapHTTPStatus maps file domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
