// Package apperr defines the error taxonomy shared by all HTTP-facing features.
// Usecases return sentinel errors; handlers classify them into a Kind, and the
// response package turns the Kind into an HTTP status.
package apperr

import "net/http"

// Kind classifies a failure by how it should be reported to a client.
type Kind int

const (
	// KindInternal is a storage or programming failure (500).
	KindInternal Kind = iota
	// KindValidation is malformed or missing input (400).
	KindValidation
	// KindUnauthorized is a missing, invalid or expired session (401).
	KindUnauthorized
	// KindForbidden is a role that may not use the endpoint (403).
	KindForbidden
	// KindNotFound is a missing or not-owned resource (404).
	KindNotFound
	// KindConflict is a uniqueness violation such as a duplicate email (409).
	KindConflict
)

// Error is an error carrying a Kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error of the given kind without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an *Error of the given kind that wraps err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for New(KindValidation, message).
func Validation(message string) *Error { return New(KindValidation, message) }

// Unauthorized is shorthand for New(KindUnauthorized, message).
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden is shorthand for New(KindForbidden, message).
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound is shorthand for New(KindNotFound, message).
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict is shorthand for New(KindConflict, message).
func Conflict(message string) *Error { return New(KindConflict, message) }

// Internal wraps a storage failure with the operation that failed.
func Internal(message string, err error) *Error { return Wrap(KindInternal, message, err) }

// HTTPStatus maps a Kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
