package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicate     = errors.New("user already exists")
	ErrInvalidEmail  = errors.New("a valid email is required")
	ErrInvalidRole   = errors.New("role must be reviewer or admin")
	ErrInvalidStatus = errors.New("status must be active or disabled")
)

// MapHTTPStatus maps user domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
