package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/logger"
	"github.com/sellfast/marketplace/internal/metrics"
)

// Logging logs every request and records its latency. Errors returned by
// handlers are rendered here so the logged status is the one sent.
func Logging(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		took := time.Since(start)
		status := c.Response().StatusCode()

		attrs := []any{slog.String("ip", c.IP())}
		if caller, ok := CallerFrom(c); ok {
			attrs = append(attrs, slog.String("user_id", caller.ID))
		}
		logger.LogRequest(c.Method(), c.Path(), status, took, attrs...)

		if m != nil {
			m.ObserveRequest(c.Method(), c.Route().Path, status, took)
		}
		return nil
	}
}
