package models

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope for every JSON payload the API returns.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Respond writes a success envelope with the given status and data.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes a failure envelope, deriving the status from the
// error taxonomy. Wrapped causes of internal and AI failures are logged here
// and never serialized to clients.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusCode(err)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		slog.ErrorContext(c.UserContext(), "unexpected error",
			"method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(Response{
			Success: false,
			Message: "Internal server error",
		})
	}

	if (appErr.Code == CodeInternal || appErr.Code == CodeAIGeneration) && appErr.Err != nil {
		slog.ErrorContext(c.UserContext(), "unexpected error",
			"method", c.Method(), "path", c.Path(), "code", appErr.Code, "error", appErr.Err)
	}

	resp := Response{
		Success: false,
		Message: appErr.Message,
	}
	if appErr.Code == CodeValidation && appErr.Err != nil {
		resp.Errors = []string{appErr.Err.Error()}
	}
	return c.Status(status).JSON(resp)
}
