package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrInvalidUserSession    = errors.New("invalid user session")
	ErrNoProductsAvailable   = errors.New("every product is already on this order")
	ErrInternalServerError   = errors.New("internal server error")
)

// StatusCode maps an error returned by a handler to the HTTP status it
// should be answered with.
func StatusCode(err error) int {
	var he interface{ StatusCode() int }

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoProductsAvailable):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequestPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidUserSession):
		return http.StatusUnauthorized
	case errors.As(err, &he):
		return he.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}
