package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind classifies service failures so the HTTP edge can pick a status.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindConflict           ErrorKind = "conflict"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindInvalidToken       ErrorKind = "invalid_token"
	KindUnavailable        ErrorKind = "unavailable"
)

// Error is the error type returned by every service operation for expected
// failures. Details carries field-level messages where there are several.
type Error struct {
	Kind    ErrorKind
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind, so callers can
// write errors.Is(err, service.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons. Only the kind is compared.
var (
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}

	// ErrInvalidCredentials is deliberately identical for unknown email,
	// inactive account and wrong password.
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Message: "invalid token"}

	// ErrInvalidResetToken covers a missing window, an expired one and a wrong
	// token alike.
	ErrInvalidResetToken = &Error{Kind: KindValidation, Message: "Password reset token is invalid or has expired."}

	// ErrUnavailable is returned when an optional backend such as S3 was not
	// configured at startup.
	ErrUnavailable = &Error{Kind: KindUnavailable, Message: "Service unavailable"}
)

func validationError(details ...string) *Error {
	return &Error{Kind: KindValidation, Message: strings.Join(details, ", "), Details: details}
}

func conflictError(details ...string) *Error {
	return &Error{Kind: KindConflict, Message: strings.Join(details, ", "), Details: details}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// translateStoreError maps gorm's translated errors onto the service taxonomy
// and passes anything else through untouched.
func translateStoreError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFoundError(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflictError("Resource already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return validationError(err.Error())
	default:
		return err
	}
}
