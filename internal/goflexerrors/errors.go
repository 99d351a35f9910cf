// Package goflexerrors collects the host-side error values goflex returns
// for failures outside the term/Signal model: bad CLI input, a program
// file that doesn't parse, a host ExternalState lookup gone wrong at the
// Go level rather than the term level. These are plain Go errors returned
// up a call stack, distinct from the Condition/Signal mechanism term
// evaluation itself uses to carry failure as data.
//
// Plain wrapped errors returned to the caller, no custom error type
// hierarchy, in the style of gitrdm-gokando's variable.go TryValue.
package goflexerrors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a named program, binding, or built-in is
// looked up and does not exist.
var ErrNotFound = errors.New("goflex: not found")

// ErrInvalidProgram is returned when a program file fails to parse into a
// term expression.
var ErrInvalidProgram = errors.New("goflex: invalid program")

// ErrBadArgument is returned for malformed CLI input caught before any
// term is ever built.
var ErrBadArgument = errors.New("goflex: bad argument")

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidProgramf wraps ErrInvalidProgram with a formatted detail message.
func InvalidProgramf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidProgram, fmt.Sprintf(format, args...))
}

// BadArgumentf wraps ErrBadArgument with a formatted detail message.
func BadArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadArgument, fmt.Sprintf(format, args...))
}
