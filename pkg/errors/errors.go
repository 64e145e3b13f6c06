package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of an error
type ErrorType string

const (
	// ErrorTypeStore covers any failure returned by the document store:
	// network, throttling, or validation performed by the store itself.
	ErrorTypeStore ErrorType = "STORE"

	// ErrorTypeConditionFailed marks a conditional update the store rejected
	// because the condition expression evaluated false.
	ErrorTypeConditionFailed ErrorType = "CONDITION_FAILED"

	// ErrorTypeValidation marks a failed field-level input check.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeExternalAPI marks a non-2xx or malformed response from the
	// messaging provider.
	ErrorTypeExternalAPI ErrorType = "EXTERNAL_API"

	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
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

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// NewStoreError wraps a failure from the document store. The cause is kept
// as-is so callers can still reach the SDK error via errors.As.
func NewStoreError(operation string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStore,
		Message: fmt.Sprintf("store operation '%s' failed", operation),
		Cause:   err,
	}
}

// NewConditionFailedError creates an error for a rejected conditional update
func NewConditionFailedError(operation string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConditionFailed,
		Message: fmt.Sprintf("condition not met for operation '%s'", operation),
		Cause:   err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewExternalAPIError creates an error for a failed messaging-provider call
func NewExternalAPIError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternalAPI,
		Message: message,
		Cause:   err,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Cause:   err,
	}
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsStore checks if an error came from the document store
func IsStore(err error) bool {
	return IsType(err, ErrorTypeStore)
}

// IsConditionFailed checks if an error is a rejected conditional update
func IsConditionFailed(err error) bool {
	return IsType(err, ErrorTypeConditionFailed)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsExternalAPI checks if an error came from the messaging provider
func IsExternalAPI(err error) bool {
	return IsType(err, ErrorTypeExternalAPI)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}
