package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a snip error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT" // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrFileNotFound      ErrorCode = "FILE_NOT_FOUND"     // 404
	ErrCancelled         ErrorCode = "CANCELLED"          // 499
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// SnipError represents a structured error with code, status, and details.
type SnipError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SnipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SnipError {
	return &SnipError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnsupportedFormat creates a 400 error for an export format other than json or markdown.
func NewUnsupportedFormat(format string) *SnipError {
	return &SnipError{
		Code:    ErrUnsupportedFormat,
		Status:  400,
		Message: fmt.Sprintf("unsupported format %q; use json or markdown", format),
		Details: map[string]any{"format": format},
	}
}

// NewNotFound creates a 404 error for when a snippet cannot be found.
func NewNotFound(id int) *SnipError {
	return &SnipError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("snippet not found: %d", id),
		Details: map[string]any{"id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing import file.
func NewFileNotFound(path string) *SnipError {
	return &SnipError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewCancelled creates a 499 error when the context is cancelled mid-operation.
func NewCancelled(op string) *SnipError {
	return &SnipError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", op),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *SnipError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &SnipError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a SnipError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SnipError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
