package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/domain/listings"
	"github.com/sellfast/marketplace/internal/metrics"
)

// NewApp builds the fiber application with middleware and routes.
func NewApp(webApp *WebApp) *fiber.App {
	if webApp.Metrics == nil {
		webApp.Metrics = metrics.New()
	}
	if webApp.RateLimitStore == nil {
		webApp.RateLimitStore = middleware.NewMemoryStore()
	}

	app := fiber.New(fiber.Config{
		AppName:      "SellFast " + webApp.Version,
		ServerHeader: "SellFast",
		ErrorHandler: middleware.CustomErrorHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    listings.MaxImageSize + 1024*1024,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: webApp.Config.Web.Debug,
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(webApp.Config.Web.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(middleware.Logging(webApp.Metrics))

	setupRoutes(app, webApp)
	return app
}

func setupRoutes(app *fiber.App, webApp *WebApp) {
	app.Get("/health", HealthCheck(webApp))
	app.Get("/metrics", adaptor.HTTPHandler(webApp.Metrics.Handler()))

	limit := webApp.Config.RateLimit
	api := app.Group("/api", middleware.RateLimit(webApp.RateLimitStore, limit.Requests, limit.Window.Duration))
	authRequired := middleware.AuthRequired(webApp.Auth)

	listingRoutes := api.Group("/listings")
	listingRoutes.Get("/", SearchListings(webApp))
	listingRoutes.Post("/", authRequired, CreateListing(webApp))
	listingRoutes.Get("/:id", GetListing(webApp))
	listingRoutes.Post("/:id/images", authRequired, UploadListingImage(webApp))
	listingRoutes.Get("/:id/bids", authRequired, ListBids(webApp))
	listingRoutes.Post("/:id/bids", authRequired, PlaceBid(webApp))

	api.Post("/bids/:id/accept", authRequired, AcceptBid(webApp))

	dealRoutes := api.Group("/deals", authRequired)
	dealRoutes.Get("/:id", GetDeal(webApp))
	dealRoutes.Post("/:id/complete", CompleteDeal(webApp))

	chatRoutes := api.Group("/chats", authRequired)
	chatRoutes.Get("/", ListChats(webApp))
	chatRoutes.Get("/:id/messages", ListMessages(webApp))
	chatRoutes.Post("/:id/messages", PostMessage(webApp))

	me := api.Group("/me", authRequired)
	me.Get("/balance", GetBalance(webApp))
	me.Get("/transactions", ListTransactions(webApp))

	admin := api.Group("/admin", authRequired, middleware.AdminRequired())
	admin.Post("/users/:id/recharge", RechargeUser(webApp))
}
