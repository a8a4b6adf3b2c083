// Package api serves the marketplace over HTTP.
package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/api/response"
	"github.com/sellfast/marketplace/internal/config"
	"github.com/sellfast/marketplace/internal/domain/bids"
	"github.com/sellfast/marketplace/internal/domain/chats"
	"github.com/sellfast/marketplace/internal/domain/deals"
	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/domain/listings"
	"github.com/sellfast/marketplace/internal/metrics"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         config.Config
	DB             Pinger
	Auth           middleware.CallerResolver
	Bids           *bids.Service
	Deals          *deals.Service
	Chats          *chats.Service
	Ledger         *ledger.Service
	Listings       *listings.Service
	Metrics        *metrics.Metrics
	RateLimitStore middleware.Store
	Version        string
}

// HealthCheck handles health check requests
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":    "healthy",
			"version":   webApp.Version,
			"timestamp": time.Now().UTC(),
		}

		if webApp.DB != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()

			if err := webApp.DB.Ping(ctx); err != nil {
				health["status"] = "unhealthy"
				health["database"] = "disconnected"
				return response.SendJSON(c, fiber.StatusServiceUnavailable, health)
			}
			health["database"] = "connected"
		}

		return response.SendJSON(c, fiber.StatusOK, health)
	}
}
