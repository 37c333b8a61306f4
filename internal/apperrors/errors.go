package apperrors

import (
	"errors"
	"net/http"
)

// ServerErrorMessage is the only message the client ever sees for the 500
// class; the real cause stays in the server logs.
const ServerErrorMessage = "An error has occurred on the server."

// Error is a request-terminating failure carrying the HTTP status it should
// be rendered with. Handlers and repositories return these; the app-level
// error handler is the single place that turns them into JSON.
type Error struct {
	Status  int
	Message string
	// Err optionally wraps the underlying cause for server-side logging.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewBadRequest reports malformed input or a failed field validation.
func NewBadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorized reports missing, invalid, or expired credentials.
func NewUnauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NewForbidden reports an authenticated caller without permission.
func NewForbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NewNotFound reports a missing entity.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// NewConflict reports a uniqueness violation (duplicate email).
func NewConflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// NewInternal wraps an unclassified failure. Its message is never sent to
// the client; the error handler substitutes ServerErrorMessage.
func NewInternal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: ServerErrorMessage, Err: err}
}

// From extracts a taxonomy error from err, or nil if err is not one.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
