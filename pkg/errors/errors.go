// Package errors provides structured error types for xptv.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the formatters
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Document errors are raised while loading a project file and abort the
// whole load:
//   - STRUCTURAL: a required section is missing or the XML is malformed
//   - UNKNOWN_TYPE: a type attribute names no registered class
//   - MALFORMED_CAPS: a stream capability string does not parse
//   - MALFORMED_VALUE: a typed attribute value does not parse
//   - DANGLING_REFERENCE: a reference element points at an unregistered id
//   - UNKNOWN_PROPERTY: a track-object attribute has no settable counterpart
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructural, "missing <%s> section", "timeline")
//	if errors.Is(err, errors.ErrCodeStructural) {
//	    // Corrupt or unsupported file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedCaps, origErr, "stream %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Document errors
	ErrCodeStructural        Code = "STRUCTURAL"
	ErrCodeUnknownType       Code = "UNKNOWN_TYPE"
	ErrCodeMalformedCaps     Code = "MALFORMED_CAPS"
	ErrCodeMalformedValue    Code = "MALFORMED_VALUE"
	ErrCodeDanglingReference Code = "DANGLING_REFERENCE"
	ErrCodeUnknownProperty   Code = "UNKNOWN_PROPERTY"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsDocumentError reports whether err was caused by the contents of a
// project document rather than by I/O or a programming error.
func IsDocumentError(err error) bool {
	switch GetCode(err) {
	case ErrCodeStructural, ErrCodeUnknownType, ErrCodeMalformedCaps,
		ErrCodeMalformedValue, ErrCodeDanglingReference, ErrCodeUnknownProperty:
		return true
	}
	return false
}
