// Package errors defines stable error codes for the analysis service.
package errors

import (
	"errors"
	"fmt"
)

// Code represents stable error codes for all failure modes
type Code string

const (
	// IOFailure indicates a source file could not be read
	IOFailure Code = "IO_FAILURE"
	// NoEnclosingNode indicates no syntax node spans the cursor position
	NoEnclosingNode Code = "NO_ENCLOSING_NODE"
	// NoEnclosingCall indicates the cursor is not inside a call expression
	NoEnclosingCall Code = "NO_ENCLOSING_CALL"
	// ParseUnavailable indicates the parser backend is not built in
	ParseUnavailable Code = "PARSE_UNAVAILABLE"
	// IndexUnavailable indicates the symbol index is missing or unreadable
	IndexUnavailable Code = "INDEX_UNAVAILABLE"
	// Internal indicates a broken invariant inside the analysis core
	Internal Code = "INTERNAL_ERROR"
)

// AnalysisError carries a stable code alongside a human-readable message
type AnalysisError struct {
	Code    Code
	Message string
	cause   error
}

// New creates an AnalysisError with the given code and message
func New(code Code, message string) *AnalysisError {
	return &AnalysisError{Code: code, Message: message}
}

// Newf creates an AnalysisError with a formatted message
func Newf(code Code, format string, args ...interface{}) *AnalysisError {
	return &AnalysisError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new AnalysisError
func Wrap(code Code, message string, cause error) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from err, or Internal if err carries none
func CodeOf(err error) Code {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return Internal
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Code == code
}
