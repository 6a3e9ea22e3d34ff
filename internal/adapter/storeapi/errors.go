package storeapi

import (
	"fmt"
	"net/http"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
)

// APIError is a non-success response from the store API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("store api: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes onto domain errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domainErrors.ErrUnauthorized
	case http.StatusForbidden:
		return domainErrors.ErrForbidden
	case http.StatusNotFound:
		return domainErrors.ErrNotFound
	case http.StatusConflict:
		return domainErrors.ErrStatusConflict
	default:
		return nil
	}
}
