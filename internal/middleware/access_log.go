package middleware

import (
	"time"

	"recipebox/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// AccessLog writes one structured line per request through the global logger.
// Errors returned by the chain are handed to the app's error handler first so
// the logged status is the one the client receives.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := logging.Info()
		if status >= fiber.StatusInternalServerError {
			event = logging.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
