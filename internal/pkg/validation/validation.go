// internal/pkg/validation/validation.go
package validation

import (
	"errors"
	"fmt"
)

// Error is a locally-detected precondition failure (no variant
// resolved, below minimum item count, above maximum item count).
// Validation errors never reach the upstream cart API.
type Error struct {
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Errorf creates a new validation error
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a validation error
func Is(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
