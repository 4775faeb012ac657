// Package errs defines the domain error taxonomy. Handlers own the mapping
// to HTTP status codes; services return these and nothing HTTP-aware.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNotFound: no ticket row matched (search miss, update/delete of
	// an unknown or already-deleted id).
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrUserNotFound: no usuarios row matched by id.
	ErrUserNotFound = errors.New("user not found")

	// ErrMalformedCode: a display code whose numeric segment does not parse.
	// Detected before any store call.
	ErrMalformedCode = errors.New("malformed ticket code")

	// ErrDuplicateEmail: unique constraint on usuarios.email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrBadCredentials: no user matches the submitted email/password pair.
	ErrBadCredentials = errors.New("invalid credentials")

	// ErrRoleNotAllowed: credentials matched but the stored role does not
	// satisfy the requested one. Kept distinct from ErrBadCredentials so the
	// client can tell 403 from 401.
	ErrRoleNotAllowed = errors.New("role not allowed")
)

// ValidationError reports a missing or invalid required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s is required", e.Field)
}

// NewValidation returns a ValidationError for the named field.
func NewValidation(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
