package domain

import "errors"

// Sentinel errors shared across services and handlers
var (
	ErrNotFound = errors.New("not found")
)

// ValidationError is a request validation failure, mapped to 400 by handlers
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// ErrValidation creates a validation error with the given message
func ErrValidation(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
