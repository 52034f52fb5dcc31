package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeAINotConfigured = "AI_NOT_CONFIGURED"
	CodeAIGeneration    = "AI_GENERATION_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is a custom application error carrying a taxonomy code. Resource
// is set for NOT_FOUND errors so callers can tell a missing Job apart from a
// missing CV without parsing messages.
type AppError struct {
	Code     string
	Resource string
	Message  string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or missing input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewUnauthorizedError reports a missing, invalid, or expired credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewNotFoundError reports a resource that is absent or not owned by the
// caller. The message deliberately does not distinguish the two cases.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:     CodeNotFound,
		Resource: resource,
		Message:  resource + " not found",
	}
}

// NewConflictError reports a duplicate unique field (e.g. email).
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewAINotConfiguredError reports a missing or placeholder AI credential.
func NewAINotConfiguredError() *AppError {
	return &AppError{
		Code:    CodeAINotConfigured,
		Message: "AI service is not configured. Please add an Anthropic API key to the server configuration.",
	}
}

// NewAIGenerationError wraps any failure from the AI collaborator.
func NewAIGenerationError(err error) *AppError {
	return &AppError{
		Code:    CodeAIGeneration,
		Message: "Failed to generate cover letter. Please try again.",
		Err:     err,
	}
}

// NewInternalError wraps an unexpected error. The wrapped cause is logged
// server-side and never serialized to clients.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// IsNotFound reports whether err is a NOT_FOUND AppError for the given
// resource kind (any kind when resource is empty).
func IsNotFound(err error, resource string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != CodeNotFound {
		return false
	}
	return resource == "" || appErr.Resource == resource
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeAINotConfigured:
		return fiber.StatusFailedDependency
	default:
		return fiber.StatusInternalServerError
	}
}
