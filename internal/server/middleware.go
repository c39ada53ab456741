package server

import (
	"errors"
	"log/slog"
	"time"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// errorHandler renders every error as {"message": ...}. fiber errors keep
// their status, store.ErrNotFound becomes 404 and anything else is a 500
// whose cause is logged rather than returned.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	}

	slog.Error("unexpected error",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

// requestLogger logs one line per request. Client errors are warnings,
// server errors are errors.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else if errors.Is(err, store.ErrNotFound) {
				status = fiber.StatusNotFound
			}
		}

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"user_id", auth.UserID(c),
			"request_id", requestID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			slog.Error("request failed", append(attrs, "error", err)...)
		case status >= fiber.StatusBadRequest:
			slog.Warn("request rejected", attrs...)
		default:
			slog.Info("request ok", attrs...)
		}
		return err
	}
}
