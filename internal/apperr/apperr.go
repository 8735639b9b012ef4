// Package apperr defines the typed error taxonomy shared by the service and
// HTTP layers. Every failure the API can surface maps to one of the kinds
// below; unknown errors default to Internal at the boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error carrying an HTTP-status-like code. The message is
// returned verbatim to the caller.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound reports a missing user, category, content or token.
func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness or invariant violation (duplicate slug+parent,
// duplicate link+category, depth or cap exceeded).
func Conflict(format string, args ...any) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: fmt.Sprintf(format, args...)}
}

// BadRequest reports malformed or missing input.
func BadRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports invalid credentials or a missing/expired token.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: fmt.Sprintf(format, args...)}
}

// Internal reports an unexpected failure. The wrapped cause stays server-side;
// callers only see the generic message.
func Internal(format string, args ...any) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for errors that
// are not an *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the error code for err, defaulting to INTERNAL.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return is(err, http.StatusNotFound) }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return is(err, http.StatusConflict) }

// IsUnauthorized reports whether err is an Unauthorized error.
func IsUnauthorized(err error) bool { return is(err, http.StatusUnauthorized) }

func is(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}
