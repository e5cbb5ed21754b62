// Package errors provides structured error types for circuitdraw.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine, scripts and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout engine reports five construction failures, all fail-fast:
//   - UNKNOWN_ANCHOR: an anchor name the component does not declare
//   - UNRESOLVED_ANCHOR: a reference to a component that is not placed yet
//   - DUPLICATE_SLOT_ASSIGNMENT: two IC pins on the same side position
//   - UNSUPPORTED_ORIENTATION: a rotation the component cannot take
//   - EMPTY_STACK: pop without a matching push
//
// The remaining codes follow the naming convention:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_* / *_NOT_FOUND: Names and resources that do not exist
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownAnchor, "%s has no anchor %q", id, name)
//	if errors.Is(err, errors.ErrCodeUnknownAnchor) {
//	    // Handle missing pin
//	}
//
//	// Wrap existing errors, keeping the original code visible
//	err := errors.Wrap(errors.GetCode(origErr), origErr, "step %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout construction errors
	ErrCodeUnknownAnchor          Code = "UNKNOWN_ANCHOR"
	ErrCodeUnresolvedAnchor       Code = "UNRESOLVED_ANCHOR"
	ErrCodeDuplicateSlot          Code = "DUPLICATE_SLOT_ASSIGNMENT"
	ErrCodeUnsupportedOrientation Code = "UNSUPPORTED_ORIENTATION"
	ErrCodeEmptyStack             Code = "EMPTY_STACK"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeUnknownElement Code = "UNKNOWN_ELEMENT"
	ErrCodeUnknownName    Code = "UNKNOWN_NAME"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
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

// Context wraps err with a message while keeping its code. Errors without a
// code are tagged with fallback.
func Context(err error, fallback Code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	code := GetCode(err)
	if code == "" {
		code = fallback
	}
	return Wrap(code, err, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message chain without code prefixes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
