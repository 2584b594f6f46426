// Package errs defines the error taxonomy shared by repositories, the
// payment adapter and HTTP handlers.
package errs

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUpstream        = errors.New("upstream service unavailable")
)

// StatusCode maps err onto an HTTP status. Wrapped errors are matched with
// errors.Is; anything unknown is a 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe text for err. Upstream and unknown errors
// never expose their wrapped detail.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrInvalidArgument):
		return err.Error()
	case errors.Is(err, ErrUpstream):
		return ErrUpstream.Error()
	default:
		return "Internal Server Error"
	}
}
