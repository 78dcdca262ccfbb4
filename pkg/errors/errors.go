// Package errors provides structured error types for assetgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map one-to-one onto the failure taxonomy of the relationship graph
// engine:
//   - DUPLICATE_*: identifier already present in the graph
//   - UNKNOWN_ASSET: identifier not present in the graph
//   - INVALID_*: input validation failures
//   - EMPTY_GRAPH, TYPE_MISMATCH: query preconditions
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownAsset, "asset %q not found", id)
//	if errors.Is(err, errors.ErrCodeUnknownAsset) {
//	    // Handle missing asset
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph store errors
	ErrCodeDuplicateAsset  Code = "DUPLICATE_ASSET"
	ErrCodeDuplicateEvent  Code = "DUPLICATE_EVENT"
	ErrCodeUnknownAsset    Code = "UNKNOWN_ASSET"
	ErrCodeInvalidStrength Code = "INVALID_STRENGTH"

	// Query errors
	ErrCodeEmptyGraph   Code = "EMPTY_GRAPH"
	ErrCodeTypeMismatch Code = "TYPE_MISMATCH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Reasons carried by ErrCodeInvalidInput errors raised during export
// validation. The strings are part of the export contract and must not change.
const (
	ReasonNilInput       = "positions and asset_ids must not be None"
	ReasonNotNumeric     = "values must be numeric"
	ReasonBadShape       = "expected shape (n,3)"
	ReasonLengthMismatch = "mismatched lengths"
	ReasonNotFinite      = "values must be finite"
	ReasonBadAssetIDs    = "asset_ids must contain non-empty strings"
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

// InvalidInput creates an ErrCodeInvalidInput error whose message is exactly
// reason. Use one of the Reason* constants for export validation failures.
func InvalidInput(reason string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: reason}
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
