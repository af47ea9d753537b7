package services

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	// ErrDenied collapses not-found and not-owner so callers cannot tell
	// whether a record they do not own exists.
	ErrDenied    = errors.New("not found or unauthorized")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
	ErrAuth      = errors.New("unauthenticated")

	ErrTooManyRequests = errors.New("too many requests")
)

// Error carries a client-safe message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
