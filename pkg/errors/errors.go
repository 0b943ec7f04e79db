package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Input validation errors
	ErrRootNotFound ErrorCode = "ROOT_NOT_FOUND"

	// Lock errors
	ErrLockBusy ErrorCode = "LOCK_BUSY"
	ErrLockOpen ErrorCode = "LOCK_OPEN"

	// Scan errors
	ErrScan ErrorCode = "SCAN"

	// Integrity check errors
	ErrFsckFailed ErrorCode = "FSCK_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// ObjlinkError represents a structured error with code and details
type ObjlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ObjlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ObjlinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ObjlinkError) Is(target error) bool {
	var targetErr *ObjlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ObjlinkError with the given code and message
func New(code ErrorCode, message string) *ObjlinkError {
	return &ObjlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ObjlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ObjlinkError {
	return &ObjlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ObjlinkError
func Wrap(err error, code ErrorCode, message string) *ObjlinkError {
	if err == nil {
		return nil
	}
	return &ObjlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ObjlinkError {
	if err == nil {
		return nil
	}
	return &ObjlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ObjlinkError) WithDetail(key string, value interface{}) *ObjlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var objlinkErr *ObjlinkError
	if errors.As(err, &objlinkErr) {
		return objlinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ObjlinkError
func GetErrorCode(err error) ErrorCode {
	var objlinkErr *ObjlinkError
	if errors.As(err, &objlinkErr) {
		return objlinkErr.Code
	}
	return ErrUnknown
}
