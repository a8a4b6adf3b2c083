package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/api/response"
	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

func GetBalance(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		balance, err := webApp.Ledger.Balance(c.UserContext(), caller.ID)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, fiber.Map{
			"user_id": caller.ID,
			"balance": balance,
		}, "")
	}
}

func ListTransactions(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)
		page, limit := ledger.PageBounds(c.QueryInt("page", 1), c.QueryInt("limit", 20))

		items, total, err := webApp.Ledger.History(c.UserContext(), caller.ID, page, limit)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendPaginated(c, items, response.NewPagination(page, limit, total), "")
	}
}

type rechargeRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// RechargeUser credits coins to a user. Admin only.
func RechargeUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req rechargeRequest
		if err := c.BodyParser(&req); err != nil {
			return response.SendBadRequest(c, "Invalid request body")
		}

		description := strings.TrimSpace(req.Description)
		if description == "" {
			description = "Balance recharge"
		}

		record, err := webApp.Ledger.Credit(c.UserContext(), ledger.Entry{
			UserID:      c.Params("id"),
			Amount:      req.Amount,
			Kind:        models.CoinRecharge,
			Description: description,
		})
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendCreated(c, record, "Balance recharged")
	}
}
