package settings

import (
	"errors"
	"net/http"
	"regexp"
)

// Domain errors for settings operations.
var (
	ErrNotFound         = errors.New("settings not initialized")
	ErrInvalidRetention = errors.New("retention must be a positive count of d, w, m, or y")
)

var retentionPattern = regexp.MustCompile(`^[1-9][0-9]*[dwmy]$`)

// ValidateRetention checks a retention period such as "180d" or "1y".
func ValidateRetention(s string) error {
	if !retentionPattern.MatchString(s) {
		return ErrInvalidRetention
	}
	return nil
}

// MapHTTPStatus maps settings domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidRetention) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
