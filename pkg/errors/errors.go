// Package errors provides structured error types for panelstitch.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI commands and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures (fatal at startup)
//   - MALFORMED_*: Unparseable document content (recoverable per panel)
//   - *_NOT_FOUND: Missing resources or structural conventions
//   - INTERNAL: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "max-per-row must be >= 1, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "parsing %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration validation errors (fatal before processing)
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPublisher Code = "INVALID_PUBLISHER"
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidAlignMode Code = "INVALID_ALIGN_MODE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Document content errors (recoverable per panel)
	ErrCodeMalformedTransform Code = "MALFORMED_TRANSFORM"
	ErrCodeMalformedDocument  Code = "MALFORMED_DOCUMENT"
	ErrCodeEmptyGeometry      Code = "EMPTY_GEOMETRY"

	// Resource / structure lookup errors
	ErrCodeStructureNotFound Code = "STRUCTURE_NOT_FOUND"
	ErrCodePanelNotFound     Code = "PANEL_NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Panel   string // Input panel the error is attributed to (optional)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Panel != "" {
		msg = fmt.Sprintf("panel %s: %s", e.Panel, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
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

// NewPanel creates a new Error attributed to a named input panel. Attribution
// is carried as a field rather than baked into the message, so callers can
// group errors by panel without parsing text.
func NewPanel(code Code, panel, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Panel:   panel,
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

// Attribute returns err attributed to the named panel. Coded errors gain the
// panel field; other errors are wrapped into an INTERNAL_ERROR first.
func Attribute(err error, panel string) *Error {
	var e *Error
	if errors.As(err, &e) {
		e.Panel = panel
		return e
	}
	return &Error{
		Code:    ErrCodeInternal,
		Message: err.Error(),
		Panel:   panel,
		Cause:   err,
	}
}

// PanelName extracts the attributed panel name from an error, or "" when the
// error is not tied to a single panel.
func PanelName(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Panel
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
