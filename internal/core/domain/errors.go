package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// the transport layer can pick a status code with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error is a classified, user-facing error.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind so errors.Is(err, ErrNotFound) works.
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Validationf builds an ErrValidation error with a formatted message.
func Validationf(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

// Internalf builds an ErrInternal error. The message is logged, never shown.
func Internalf(format string, args ...any) error {
	return newError(ErrInternal, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidCredentials = newError(ErrAuth, "invalid credentials")
	ErrMissingToken       = newError(ErrAuth, "no token provided")
	ErrInvalidToken       = newError(ErrAuth, "invalid or expired token")

	ErrUserNotFound   = newError(ErrNotFound, "user not found")
	ErrVendorNotFound = newError(ErrNotFound, "vendor not found")
	ErrClientNotFound = newError(ErrNotFound, "client not found or invalid")
	ErrOrderNotFound  = newError(ErrNotFound, "order not found")

	ErrEmailTaken       = newError(ErrValidation, "email already registered")
	ErrInvalidRole      = newError(ErrValidation, "invalid role")
	ErrVendorRequired   = newError(ErrValidation, "vendedorId is required for role cliente")
	ErrInvalidVendor    = newError(ErrValidation, "vendor not found or invalid, client removed")
	ErrClientIDRequired = newError(ErrValidation, "cliente_id is required to create an order")
	ErrInvalidStatus    = newError(ErrValidation, "invalid status")

	ErrOrderCaptured      = newError(ErrConflict, "cannot edit a captured order")
	ErrInvalidTransition  = newError(ErrConflict, "invalid status transition")
	ErrRelationshipFailed = newError(ErrConflict, "could not link client to vendor, client removed")
	ErrRequestInFlight    = newError(ErrConflict, "a request with this Idempotency-Key is still in progress")
)
