package documents

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("document already exists")
	ErrInvalidDocument = errors.New("invalid document")
	ErrTooLarge        = errors.New("document exceeds maximum size")
	ErrUnsupportedType = errors.New("unsupported document type")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}
