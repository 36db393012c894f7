// Package errors provides the error types raised by product and inventory operations.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInventoryNotFound = errors.New("inventory not found")
)

// ValidationError reports a caller-correctable request problem: a bad or
// missing field, or a reference to a record that does not exist. It is always
// raised before any store mutation.
type ValidationError struct {
	msg string
}

// NewValidation creates a ValidationError with a formatted message.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInventoryNotFound)
}
