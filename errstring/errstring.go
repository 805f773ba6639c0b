// Package errstring defines a sentinel error type that can wrap a cause
package errstring

import (
	"fmt"
)

// Error is a comparable sentinel error
type Error struct {
	msg string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.msg
}

// New creates a new sentinel error
func New(msg string) *Error {
	return &Error{msg}
}

// Wrap returns an error that matches e with errors.Is and unwraps to cause.
func (e *Error) Wrap(cause error) error {
	return &wrappedError{
		sentinel: e,
		cause:    cause,
	}
}

// Wrapf is a shortcut for Wrap(fmt.Errorf("...", ...))
func (e *Error) Wrapf(msg string, args ...any) error {
	return &wrappedError{
		sentinel: e,
		cause:    fmt.Errorf(msg, args...), //nolint:goerr113
	}
}

type wrappedError struct {
	sentinel *Error
	cause    error
}

func (e *wrappedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *wrappedError) Is(err error) bool {
	if err == nil {
		return false
	}
	s, ok := err.(*Error) //nolint:errorlint
	return ok && s == e.sentinel
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}
