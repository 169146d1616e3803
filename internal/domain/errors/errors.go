package errors

import (
	stderrors "errors"
)

// Kind classifies an error for handlers to map to an HTTP status.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal_server_error"
	KindCustom       Kind = "custom"
)

// Client-facing phrases, one per kind.
const (
	PhraseUnauthorized = "You must be logged in to perform this action."
	PhraseValidation   = "The submitted data is incomplete or invalid."
	PhraseForbidden    = "You don't have permission to perform this action."
	PhraseNotFound     = "The requested data was not found."
	PhraseInternal     = "An unexpected server error occurred. Please try again later."
	PhraseCustom       = "An error occurred. Please try again."
)

// FieldError points at one invalid input field.
type FieldError struct {
	Path    string
	Message string
}

// Error is the single error type returned by use cases.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	// Err is the underlying cause; never shown to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrForbidden) holds
// for every forbidden error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: PhraseUnauthorized}
	ErrValidation   = &Error{Kind: KindValidation, Message: PhraseValidation}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: PhraseForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: PhraseNotFound}
	ErrInternal     = &Error{Kind: KindInternal, Message: PhraseInternal}
)

// Validation returns a validation error carrying field details.
func Validation(message string, fields ...FieldError) *Error {
	if message == "" {
		message = PhraseValidation
	}
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Forbidden returns a forbidden error; empty message uses the default phrase.
func Forbidden(message string) *Error {
	if message == "" {
		message = PhraseForbidden
	}
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound returns a not-found error; empty message uses the default phrase.
func NotFound(message string) *Error {
	if message == "" {
		message = PhraseNotFound
	}
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. The cause stays server-side.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: PhraseInternal, Err: err}
}

// KindOf returns the kind of err, treating anything unclassified as internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As extracts the *Error from err, wrapping unclassified errors as internal.
func As(err error) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return Internal(err)
}
