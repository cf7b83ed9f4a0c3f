// Package apperr defines the error kinds surfaced by services to handlers.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match them with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal error")
)

// Error carries a kind, a client-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports bad input shape or content.
func Validation(format string, args ...any) error { return newf(ErrValidation, format, args...) }

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...any) error { return newf(ErrConflict, format, args...) }

// NotFound reports a missing entity.
func NotFound(format string, args ...any) error { return newf(ErrNotFound, format, args...) }

// Unauthenticated reports a request without a bound identity.
func Unauthenticated(format string, args ...any) error {
	return newf(ErrUnauthenticated, format, args...)
}

// Forbidden reports an authenticated identity acting on someone else's resource.
func Forbidden(format string, args ...any) error { return newf(ErrForbidden, format, args...) }

// Internal wraps an unexpected failure. The message is safe to show to clients.
func Internal(message string, err error) error {
	return &Error{Kind: ErrInternal, Message: message, Err: err}
}

// KindOf returns the sentinel kind of err. Anything unclassified is internal.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrUnauthenticated, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// MessageOf returns the client-facing message for err. Internal failures never
// expose their cause.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
