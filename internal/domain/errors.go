package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrChosenUserNotFound = errors.New("chosen user not found")
	ErrQuotaExceeded      = errors.New("daily choice limit exceeded")
	ErrIncompleteProfile  = errors.New("personality questionnaire incomplete")
	ErrSelectionNotFound  = errors.New("daily selection not found")
	ErrInvalidToken       = errors.New("invalid service token")
)

// ValidationError reports a rejected questionnaire submission with enough
// context for the caller to correct the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
