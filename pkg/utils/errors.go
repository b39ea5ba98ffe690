package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
	ErrorTypeCorruptInput      ErrorType = "corrupt_input"
	ErrorTypeRemoteBackend     ErrorType = "remote_backend"
	ErrorTypeLocalBackend      ErrorType = "local_backend"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeIO                ErrorType = "io"
	ErrorTypeNetwork           ErrorType = "network"
	ErrorTypeSystem            ErrorType = "system"
	ErrorTypeTimeout           ErrorType = "timeout"
	ErrorTypePermission        ErrorType = "permission"
	ErrorTypeNotFound          ErrorType = "not_found"
)

// AppError represents an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new application error
func NewError(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewUnsupportedFormatError is returned when the input is neither a known image format nor PDF
func NewUnsupportedFormatError(message string, cause error) *AppError {
	return NewError(ErrorTypeUnsupportedFormat, message, cause)
}

// NewCorruptInputError is returned when input bytes cannot be decoded
func NewCorruptInputError(message string, cause error) *AppError {
	return NewError(ErrorTypeCorruptInput, message, cause)
}

// NewRemoteBackendError creates a remote recognition error
func NewRemoteBackendError(message string, cause error) *AppError {
	return NewError(ErrorTypeRemoteBackend, message, cause)
}

// NewLocalBackendError creates a local recognition error
func NewLocalBackendError(message string, cause error) *AppError {
	return NewError(ErrorTypeLocalBackend, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewError(ErrorTypeValidation, message, cause)
}

// NewIOError creates an I/O error
func NewIOError(message string, cause error) *AppError {
	return NewError(ErrorTypeIO, message, cause)
}

// NewSystemError creates a system error
func NewSystemError(message string, cause error) *AppError {
	return NewError(ErrorTypeSystem, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string, cause error) *AppError {
	return NewError(ErrorTypeNotFound, message, cause)
}

// NewPermissionError creates a permission error
func NewPermissionError(message string, cause error) *AppError {
	return NewError(ErrorTypePermission, message, cause)
}

// WrapError wraps an existing error with additional context.
// An empty errorType keeps the type of a wrapped AppError, or classifies the cause.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) && errorType == "" {
		return &AppError{
			Type:    appErr.Type,
			Message: message + ": " + appErr.Message,
			Cause:   appErr.Cause,
			Context: appErr.Context,
		}
	}

	if errorType == "" {
		errorType = classifyError(err)
	}

	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// classifyError automatically classifies an error based on its content
func classifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeSystem
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return ErrorTypeTimeout
	case strings.Contains(errStr, "permission denied") || strings.Contains(errStr, "access denied"):
		return ErrorTypePermission
	case strings.Contains(errStr, "no such file") || strings.Contains(errStr, "not found"):
		return ErrorTypeNotFound
	case strings.Contains(errStr, "network") || strings.Contains(errStr, "connection"):
		return ErrorTypeNetwork
	case strings.Contains(errStr, "invalid") || strings.Contains(errStr, "bad"):
		return ErrorTypeValidation
	default:
		return ErrorTypeSystem
	}
}

// GetErrorType extracts the error type from an error chain
func GetErrorType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return classifyError(err)
}

// IsRecoverable reports whether err looks transient, so running again may succeed
func IsRecoverable(err error) bool {
	switch GetErrorType(err) {
	case ErrorTypeRemoteBackend, ErrorTypeTimeout, ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsUnsupportedFormat reports whether err is an UnsupportedFormatError
func IsUnsupportedFormat(err error) bool { return isType(err, ErrorTypeUnsupportedFormat) }

// IsCorruptInput reports whether err is a CorruptInputError
func IsCorruptInput(err error) bool { return isType(err, ErrorTypeCorruptInput) }

// IsRemoteBackend reports whether err is a RemoteBackendError
func IsRemoteBackend(err error) bool { return isType(err, ErrorTypeRemoteBackend) }

// IsLocalBackend reports whether err is a LocalBackendError
func IsLocalBackend(err error) bool { return isType(err, ErrorTypeLocalBackend) }
