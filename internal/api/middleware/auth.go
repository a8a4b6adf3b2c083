package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/response"
	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/auth"
)

const callerKey = "caller"

type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*auth.Caller, error)
}

// AuthRequired resolves the bearer token and stores the caller in the context.
func AuthRequired(resolver CallerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))

		caller, err := resolver.ResolveCaller(c.UserContext(), token)
		if err != nil {
			slog.Debug("Auth required: caller not resolved",
				slog.String("path", c.Path()),
				slog.Any("error", err))
			return response.SendAppError(c, err)
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return response.SendAppError(c, apperr.Unauthorized("authentication required"))
		}
		if !caller.IsAdmin() {
			slog.Warn("Admin required: caller lacks admin role",
				slog.String("user_id", caller.ID),
				slog.String("path", c.Path()))
			return response.SendAppError(c, apperr.Forbidden("admin access required"))
		}
		return c.Next()
	}
}

func CallerFrom(c *fiber.Ctx) (*auth.Caller, bool) {
	caller, ok := c.Locals(callerKey).(*auth.Caller)
	return caller, ok && caller != nil
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
