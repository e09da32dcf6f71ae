package diagnostics

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidRequest = errors.New("invalid diagnostic request")
	ErrTimeout        = errors.New("diagnostic run exceeded its deadline")
	ErrRunNotFound    = errors.New("diagnostic run not found")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
