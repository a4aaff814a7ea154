// Package errors provides structured error handling for the newsroom
// application. It defines error types with codes, messages, causes, and
// contextual information so failures can be classified by the REST layer
// and traced through the pipeline.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrorCode represents a categorized error type for structured error handling.
type ErrorCode string

// Error code constants for categorizing application errors.
const (
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT_ERROR"
	ErrCodeRateLimit    ErrorCode = "RATE_LIMIT_ERROR"
	ErrCodeExternalAPI  ErrorCode = "EXTERNAL_API_ERROR"
	ErrCodeStorage      ErrorCode = "STORAGE_ERROR"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnknown      ErrorCode = "UNKNOWN_ERROR"
)

// AppError represents a structured application error with code, message,
// cause, and context. It implements the error interface and supports
// error unwrapping.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns a string representation of the AppError.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ValidationError creates an AppError for input validation failures.
func ValidationError(message string, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Context: context}
}

// NotFoundError creates an AppError for missing resources.
func NotFoundError(message string, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Context: context}
}

// ConflictError creates an AppError for optimistic-concurrency conflicts.
func ConflictError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Cause: cause, Context: context}
}

// RateLimitError creates an AppError for rate limiting violations.
func RateLimitError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeRateLimit, Message: message, Cause: cause, Context: context}
}

// ExternalAPIError creates an AppError for external API call failures.
func ExternalAPIError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeExternalAPI, Message: message, Cause: cause, Context: context}
}

// StorageError creates an AppError for document store failures.
func StorageError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeStorage, Message: message, Cause: cause, Context: context}
}

// UnauthorizedError creates an AppError for failed authentication.
func UnauthorizedError(message string, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message, Context: context}
}

// UnknownError creates an AppError for unclassified errors.
func UnknownError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{Code: ErrCodeUnknown, Message: message, Cause: cause, Context: context}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Errors that are not AppErrors report ErrCodeUnknown.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeUnknown
}

// LogError logs an error with structured logging and any attached context.
func LogError(logger *slog.Logger, err error, operation string) {
	if logger == nil || err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		args := []any{"operation", operation, "code", string(appErr.Code), "message", appErr.Message}
		if appErr.Cause != nil {
			args = append(args, "cause", appErr.Cause.Error())
		}
		for k, v := range appErr.Context {
			args = append(args, k, v)
		}
		logger.Error("application error", args...)
		return
	}

	logger.Error("unexpected error", "operation", operation, "error", err)
}
