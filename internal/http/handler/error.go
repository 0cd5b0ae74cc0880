package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/http/middleware"
	"burialdesk/internal/intake"
	"burialdesk/internal/model"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// messagePayload acknowledges a mutation.
type messagePayload struct {
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeUpstreamError maps a remote API failure. Messages from the API are
// meant for operators and are passed through.
func writeUpstreamError(c *fiber.Ctx, err error) error {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "records service unavailable")
	}

	msg := apiErr.Message
	switch apiErr.StatusCode {
	case fiber.StatusUnauthorized:
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", orMessage(msg, "login required"))
	case fiber.StatusForbidden:
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", orMessage(msg, "not allowed"))
	case fiber.StatusNotFound:
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", orMessage(msg, "resource not found"))
	case fiber.StatusBadRequest, fiber.StatusConflict, fiber.StatusUnprocessableEntity:
		return writeError(c, apiErr.StatusCode, "REJECTED", orMessage(msg, "request rejected"))
	default:
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", orMessage(msg, "records service error"))
	}
}

// writeIntakeError maps controller errors.
func writeIntakeError(c *fiber.Ctx, err error) error {
	var vErr *intake.ValidationError
	var sErr *intake.SubmitError
	switch {
	case errors.As(err, &vErr):
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", vErr.Message)
	case errors.Is(err, intake.ErrSubmitInProgress):
		return writeError(c, fiber.StatusConflict, "SUBMIT_IN_PROGRESS", err.Error())
	case errors.Is(err, intake.ErrNotOpen):
		return writeError(c, fiber.StatusConflict, "FORM_NOT_OPEN", err.Error())
	case errors.Is(err, model.ErrUnknownField):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_FIELD", err.Error())
	case errors.As(err, &sErr):
		return writeError(c, fiber.StatusBadGateway, "SUBMIT_FAILED", sErr.Message)
	default:
		return writeUpstreamError(c, err)
	}
}

func orMessage(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "login required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
