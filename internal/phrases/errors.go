package phrases

import (
	"errors"
	"net/http"
)

// Domain errors for forbidden-phrase operations.
var (
	ErrNotFound         = errors.New("phrase not found")
	ErrDuplicate        = errors.New("phrase already exists")
	ErrInvalidPhrase    = errors.New("phrase is required")
	ErrInvalidRiskLevel = errors.New("risk_level must be low, medium, or high")
	ErrUnknownReference = errors.New("reference_id is not in the reference catalog")
)

// MapHTTPStatus maps phrase domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidPhrase),
		errors.Is(err, ErrInvalidRiskLevel),
		errors.Is(err, ErrUnknownReference):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
