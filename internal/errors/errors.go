package errors

import "fmt"

// ErrorCode represents a fern error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrImageTooLarge  ErrorCode = "IMAGE_TOO_LARGE" // 413
	ErrInvalidImport  ErrorCode = "INVALID_IMPORT"  // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// JournalError represents a structured error with code, status, and details.
type JournalError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JournalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *JournalError {
	return &JournalError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an entry cannot be found.
func NewNotFound(id string) *JournalError {
	return &JournalError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing import file.
func NewFileNotFound(path string) *JournalError {
	return &JournalError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewImageTooLarge creates a 413 error when an image data URI exceeds the
// configured size cap.
func NewImageTooLarge(max, actual int) *JournalError {
	return &JournalError{
		Code:    ErrImageTooLarge,
		Status:  413,
		Message: fmt.Sprintf("image exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewInvalidImport creates a 422 error for an unusable backup payload.
func NewInvalidImport(msg string) *JournalError {
	return &JournalError{
		Code:    ErrInvalidImport,
		Status:  422,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *JournalError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &JournalError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a JournalError with the given code.
func Is(err error, code ErrorCode) bool {
	if jErr, ok := err.(*JournalError); ok {
		return jErr.Code == code
	}
	return false
}
