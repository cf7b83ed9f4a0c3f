package handlers

import (
	"errors"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps an error kind onto an HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		return fiber.StatusBadRequest
	case apperr.ErrConflict:
		return fiber.StatusConflict
	case apperr.ErrNotFound:
		return fiber.StatusNotFound
	case apperr.ErrUnauthenticated:
		return fiber.StatusUnauthorized
	case apperr.ErrForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the Fiber error handler. Every error is answered as
// {"error": message}; internal failures are logged and answered generically.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	status := StatusOf(err)
	if status == fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": apperr.MessageOf(err)})
}
