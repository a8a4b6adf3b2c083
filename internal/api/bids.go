package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/api/response"
	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/bids"
)

type placeBidRequest struct {
	Amount    int64 `json:"amount"`
	CoinsUsed int64 `json:"coins_used"`
}

func PlaceBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		var req placeBidRequest
		if err := c.BodyParser(&req); err != nil {
			return response.SendBadRequest(c, "Invalid request body")
		}

		bid, err := webApp.Bids.PlaceBid(c.UserContext(), bids.PlaceBidInput{
			ListingID: c.Params("id"),
			BidderID:  caller.ID,
			Amount:    req.Amount,
			CoinsUsed: req.CoinsUsed,
		})
		if err != nil {
			return response.SendAppError(c, err)
		}

		webApp.Metrics.BidsPlaced.Inc()
		return response.SendCreated(c, bid, "Bid placed")
	}
}

func ListBids(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		list, err := webApp.Bids.ListBids(c.UserContext(), c.Params("id"), caller.ID)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, list, "")
	}
}

// AcceptBid accepts a pending bid on the caller's listing. A bid found past
// its deadline is marked expired and answered with 410.
func AcceptBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		result, err := webApp.Bids.AcceptBid(c.UserContext(), c.Params("id"), caller.ID)
		if err != nil {
			if errors.Is(err, apperr.ErrExpired) {
				webApp.Metrics.BidsExpired.Inc()
			}
			return response.SendAppError(c, err)
		}

		webApp.Metrics.BidsAccepted.Inc()
		webApp.Metrics.BidsRejected.Add(float64(len(result.Rejected)))

		return response.SendSuccess(c, result, "Bid accepted")
	}
}
