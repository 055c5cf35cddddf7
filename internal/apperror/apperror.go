// Package apperror defines the typed failures the service layer returns.
//
// Every AppError wraps one of the sentinel errors below, so callers branch
// with errors.Is and never on message text:
//
//	if errors.Is(err, apperror.ErrConflict) { ... }
//
// The HTTP layer maps sentinels to status codes (see handler.writeError).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // sentinel
	Message string // human-readable message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized reports a request without valid credentials.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// DuplicateUsername reports a registration for a username that already
// exists. It is a conflict, so errors.Is(err, ErrConflict) holds.
func DuplicateUsername(username string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("username %q is already taken", username),
		Field:   "username",
	}
}

// AuthFailed is returned for every failed login, whether the username was
// unknown or the password was wrong. The message never says which.
func AuthFailed() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "invalid username or password",
	}
}
