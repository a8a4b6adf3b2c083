package api

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/api/response"
)

func GetDeal(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		deal, err := webApp.Deals.GetDeal(c.UserContext(), c.Params("id"), caller.ID)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, deal, "")
	}
}

type completeDealRequest struct {
	IsSuccess json.RawMessage `json:"is_success"`
}

// isSuccess returns nil unless the body carries a JSON boolean, leaving the
// complaint to the service so that missing and forbidden deals are reported first.
func (r completeDealRequest) isSuccess() *bool {
	var v *bool
	if len(r.IsSuccess) == 0 || json.Unmarshal(r.IsSuccess, &v) != nil {
		return nil
	}
	return v
}

func CompleteDeal(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		// an unreadable body becomes a missing outcome; the service rejects it
		// only after the deal lookup and participant check
		var req completeDealRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			slog.Debug("Complete deal: unreadable body",
				slog.String("deal_id", c.Params("id")),
				slog.Any("error", err))
		}
		isSuccess := req.isSuccess()

		deal, err := webApp.Deals.CompleteDeal(c.UserContext(), c.Params("id"), caller.ID, isSuccess)
		if err != nil {
			return response.SendAppError(c, err)
		}

		webApp.Metrics.DealsCompleted.WithLabelValues(strconv.FormatBool(*isSuccess)).Inc()
		return response.SendSuccess(c, deal, "Deal completed")
	}
}
