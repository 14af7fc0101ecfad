package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnsupportedFileType indicates no extractor exists for the file extension.
	// Not a failure: operations degrade to full-content passthrough.
	UnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	// FileNotFound indicates the file does not exist on disk
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ReadFailed indicates the file could not be read
	ReadFailed ErrorCode = "READ_FAILED"
	// WriteFailed indicates the file could not be written
	WriteFailed ErrorCode = "WRITE_FAILED"
	// NoMatch indicates an edit target string was not found in the file
	NoMatch ErrorCode = "NO_MATCH"
	// AmbiguousMatch indicates an edit target string occurs more than once
	AmbiguousMatch ErrorCode = "AMBIGUOUS_MATCH"
	// ParseFailed indicates the extractor could not parse the source
	ParseFailed ErrorCode = "PARSE_FAILED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FocusError represents a focus error with a stable code and message
type FocusError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// New creates a new FocusError
func New(code ErrorCode, message string) *FocusError {
	return &FocusError{Code: code, Message: message}
}

// Wrap creates a new FocusError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *FocusError {
	return &FocusError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *FocusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *FocusError) Unwrap() error {
	return e.cause
}

// NewNotFound creates a FILE_NOT_FOUND error for a path
func NewNotFound(path string) *FocusError {
	return New(FileNotFound, fmt.Sprintf("File not found: %s", path))
}

// NewNoMatch creates a NO_MATCH error for an edit whose target string is absent
func NewNoMatch(path string) *FocusError {
	return New(NoMatch, fmt.Sprintf("Old text not found in %s", path))
}

// NewAmbiguousMatch creates an AMBIGUOUS_MATCH error reporting the exact count
func NewAmbiguousMatch(path string, count int) *FocusError {
	return New(AmbiguousMatch, fmt.Sprintf("Old text is ambiguous in %s: %d occurrences, expected exactly 1", path, count))
}

// NewParseFailed creates a PARSE_FAILED error with a diagnostic
func NewParseFailed(path string, diagnostic string) *FocusError {
	return New(ParseFailed, fmt.Sprintf("Failed to parse %s: %s", path, diagnostic))
}

// CodeOf returns the error code of err if it is (or wraps) a FocusError,
// or InternalError otherwise.
func CodeOf(err error) ErrorCode {
	var fe *FocusError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given error code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
