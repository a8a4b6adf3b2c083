package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/api/response"
	"github.com/sellfast/marketplace/internal/domain/listings"
)

func SearchListings(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.Listings.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", 20))
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, list, "")
	}
}

func GetListing(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := webApp.Listings.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, detail, "")
	}
}

func CreateListing(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		var in listings.CreateInput
		if err := c.BodyParser(&in); err != nil {
			return response.SendBadRequest(c, "Invalid request body")
		}

		listing, err := webApp.Listings.Create(c.UserContext(), caller.ID, in)
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendCreated(c, listing, "Listing created")
	}
}

// UploadListingImage expects a multipart form with the file in the "image" field.
func UploadListingImage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := middleware.CallerFrom(c)

		header, err := c.FormFile("image")
		if err != nil {
			return response.SendBadRequest(c, "No image uploaded")
		}

		file, err := header.Open()
		if err != nil {
			return response.SendBadRequest(c, "Failed to read uploaded image")
		}
		defer file.Close()

		listing, err := webApp.Listings.UploadImage(c.UserContext(), c.Params("id"), caller.ID, listings.ImageUpload{
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			return response.SendAppError(c, err)
		}
		return response.SendSuccess(c, listing, "Image uploaded")
	}
}
