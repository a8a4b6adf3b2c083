package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/api/response"
	"github.com/sellfast/marketplace/internal/domain/chats"
)

func ListChats(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		list, err := webApp.Chats.ListChats(c.UserContext(), caller.ID)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, list, "")
	}
}

func ListMessages(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		messages, err := webApp.Chats.ListMessages(c.UserContext(), c.Params("id"), caller.ID)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, messages, "")
	}
}

func PostMessage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		var in chats.MessageInput
		if err := c.BodyParser(&in); err != nil {
			return response.SendBadRequest(c, "Invalid request body")
		}

		result, err := webApp.Chats.PostMessage(c.UserContext(), c.Params("id"), caller.ID, in)
		if err != nil {
			return response.SendAppError(c, err)
		}

		kind := "text"
		if in.IsLocation {
			kind = "location"
		}
		webApp.Metrics.Messages.WithLabelValues(kind).Inc()
		if result.ChatBlocked {
			webApp.Metrics.ChatsBlocked.Inc()
		}

		return response.SendCreated(c, result, "")
	}
}
