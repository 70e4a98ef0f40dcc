package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// ValidationError reports a write rejected by a field constraint. The field
// name is surfaced to the caller; internal storage detail is not.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a field-constraint violation and
// returns it for field inspection.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
