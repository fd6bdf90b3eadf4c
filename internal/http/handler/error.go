package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Fixed client-facing messages for the questions endpoint.
const (
	msgQuestionRequired   = "store_id and question are required"
	msgUnauthorized       = "Unauthorized: Shop not found or app not installed."
	msgServiceUnavailable = "AI Service unavailable. Is the Python server running on port 8000?"
	msgGatewayErrorPrefix = "Internal Gateway Error: "
	msgInvalidBody        = "invalid request body"
)

// errorPayload is the error body every endpoint returns: {"error": "..."}.
type errorPayload struct {
	Error string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// ErrorHandler returns a Fiber global error handler rendering framework errors
// (unknown routes, wrong methods, panics) in the same {"error": ...} shape.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}
