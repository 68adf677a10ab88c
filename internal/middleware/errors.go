package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emandor/lemme_relay/internal/telemetry"
)

// ErrorHandler is the app-wide fiber error handler. Fiber errors keep their
// code, anything else is logged and hidden behind a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	rid, _ := c.Locals(ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()
	log.Error().Err(err).Str("path", c.Path()).Msg("request_failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
