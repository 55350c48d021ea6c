// Package errors provides structured error types for casework.
//
// Every failure surfaced by the composition core carries a machine-readable
// code so callers (CLI, scripting engine) can branch on the category without
// string matching. Errors wrap their cause and participate in errors.Is/As
// chains. Panel generation has no transient failure mode, so nothing in this
// package implies a retry.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeInvalidOrientation reports an orientation tag outside the
	// closed FRONT/SIDE/TOP set.
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"

	// ErrCodeDuplicateNamespace reports a parameter container whose
	// namespace already exists in the target document.
	ErrCodeDuplicateNamespace Code = "DUPLICATE_NAMESPACE"

	// ErrCodeDuplicateName reports a panel name collision in the sink.
	ErrCodeDuplicateName Code = "DUPLICATE_NAME"

	// ErrCodeSinkCreate wraps any other failure reported by the external
	// sink while creating or configuring a panel.
	ErrCodeSinkCreate Code = "SINK_CREATE"

	// ErrCodeNegativeDimension reports a derived inner or effective
	// dimension that computes to zero or below under literal inputs.
	ErrCodeNegativeDimension Code = "NEGATIVE_DIMENSION"

	// ErrCodeInvalidBackRatio reports a niche back ratio outside [0, 1].
	ErrCodeInvalidBackRatio Code = "INVALID_BACK_RATIO"

	// ErrCodeInvalidPlan reports a malformed assembly plan file.
	ErrCodeInvalidPlan Code = "INVALID_PLAN"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // machine-readable error code
	Message string // human-readable message
	Cause   error  // underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns the empty string if the error chain has no *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
