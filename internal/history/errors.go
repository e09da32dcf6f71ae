package history

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("history entry not found")
	ErrInvalidEntry = errors.New("invalid history entry")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidEntry) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
