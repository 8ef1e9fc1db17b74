package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error.
//
// Every error in the posting and verification flows is recoverable: the
// caller keeps the user on the same step and the user retries. The codes
// below are the complete taxonomy; handlers map them to HTTP statuses.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error codes used across services and handlers.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeQuota         = "QUOTA_EXCEEDED"
	CodeConstraint    = "CONSTRAINT_VIOLATION"
	CodeWindowClosed  = "WINDOW_CLOSED"
	CodeMismatch      = "CODE_MISMATCH"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewQuotaError reports that the daily post limit for the current
// friend-count tier has been reached.
func NewQuotaError(message string) *AppError {
	return &AppError{
		Code:    CodeQuota,
		Message: message,
	}
}

// NewConstraintError reports a staged file exceeding a size or duration limit.
func NewConstraintError(message string) *AppError {
	return &AppError{
		Code:    CodeConstraint,
		Message: message,
	}
}

// NewWindowClosedError reports an action attempted outside the permitted
// time-of-day window.
func NewWindowClosedError(message string) *AppError {
	return &AppError{
		Code:    CodeWindowClosed,
		Message: message,
	}
}

// NewMismatchError reports an entered code that does not match the issued one.
func NewMismatchError(message string) *AppError {
	return &AppError{
		Code:    CodeMismatch,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
