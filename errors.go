package leadchat

import (
	"fmt"
	"strings"
)

// ValidationError reports caller-supplied booking data that is missing one
// or more required fields. The fields are named so the caller can surface
// them directly.
type ValidationError struct {
	Missing []string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// NewValidationError creates a ValidationError for the given missing fields.
func NewValidationError(missing ...string) *ValidationError {
	return &ValidationError{Missing: missing}
}
