package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the repositories and services. Handlers map these
// onto HTTP status codes: ErrInvalidID -> 400, ErrNotFound -> 404,
// ValidationError -> 400 with field detail, anything else -> 500.
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid identifier")
)

// ValidationError reports a field-level constraint violation. Validation
// always runs before any persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
