package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/langkey/internal"
)

// PanicError represents a recovered panic.
// It unwraps to a 500 HTTPError so the default error handler renders it
// without leaking the panic value.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the HTTP error rendered for the panic.
func (e *PanicError) Unwrap() error {
	return internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithErrorCode("panic"))
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
