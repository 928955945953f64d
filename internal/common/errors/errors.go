// Package errors provides standardized error handling for the legal gateway.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"

	ErrCodeNoAnswerAvailable ErrorCode = "NO_ANSWER_AVAILABLE"
	ErrCodeSourceTimeout     ErrorCode = "SOURCE_TIMEOUT"
	ErrCodeSourceFailed      ErrorCode = "SOURCE_FAILED"
	ErrCodeSourceSkipped     ErrorCode = "SOURCE_SKIPPED"

	ErrCodeFormTypeUnknown      ErrorCode = "FORM_TYPE_UNKNOWN"
	ErrCodeFormValidationFailed ErrorCode = "FORM_VALIDATION_FAILED"
	ErrCodePDFRenderFailed      ErrorCode = "PDF_RENDER_FAILED"

	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates an authentication failure error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Unauthorized",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoAnswerError signals total exhaustion of the answer chain.
// This is the only condition under which a chat resolution fails outright.
func NewNoAnswerError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoAnswerAvailable,
		Message:   "No answer available from legal AI services",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFormTypeError creates an unknown-form-type error.
func NewFormTypeError(formType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFormTypeUnknown,
		Message:   "Unknown form type",
		Details:   formType,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError creates a retryable persistence error.
func NewDatabaseError(code ErrorCode, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   "Database operation failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// AsStandard extracts a *StandardError from an error chain, normalizing
// anything else into an INTERNAL_ERROR.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the error code of err, or INTERNAL_ERROR for foreign errors.
func CodeOf(err error) ErrorCode {
	return AsStandard(err).Code
}
