package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sellfast/marketplace/internal/api"
	"github.com/sellfast/marketplace/internal/api/middleware"
	"github.com/sellfast/marketplace/internal/domain/auth"
	"github.com/sellfast/marketplace/internal/domain/bids"
	"github.com/sellfast/marketplace/internal/domain/chats"
	"github.com/sellfast/marketplace/internal/domain/deals"
	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/domain/listings"
	"github.com/sellfast/marketplace/internal/events"
	"github.com/sellfast/marketplace/internal/gateways/database"
	"github.com/sellfast/marketplace/internal/gateways/database/repositories"
	"github.com/sellfast/marketplace/internal/gateways/storage"
	"github.com/sellfast/marketplace/internal/logger"
	"github.com/sellfast/marketplace/internal/metrics"
)

const shutdownTimeout = 30 * time.Second

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.LogSystem("Starting SellFast",
			slog.String("version", Version),
			slog.String("commit", Commit))

		dbStart := time.Now()
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			logger.LogError("Failed to connect to database", err)
			return err
		}
		defer db.Close()
		logger.LogSystem("Database connected", slog.Duration("took", time.Since(dbStart)))

		bunDB := db.BunDB()
		tm := database.NewTransactionManager(bunDB, cfg.Market.TxTimeout.Duration)

		publisher, closePublisher := newPublisher()
		defer closePublisher()

		var images listings.ImageStore
		if cfg.Spaces.Enabled() {
			store, err := storage.NewSpacesStore(ctx, cfg.Spaces)
			if err != nil {
				logger.LogError("Failed to initialize image storage", err)
				return err
			}
			images = store
		} else {
			logger.LogSystem("Image storage not configured, uploads disabled")
		}

		rateLimitStore, closeStore, err := newRateLimitStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		userRepo := repositories.NewUserRepository(bunDB)
		webApp := &api.WebApp{
			Config: *cfg,
			DB:     db,
			Auth:   auth.NewService(auth.NewSigner(cfg.Web.SessionKey), userRepo, cfg.Market.TokenTTL.Duration),
			Bids: bids.NewService(
				repositories.NewBidRepository(bunDB),
				repositories.NewBidUnitOfWork(tm),
				publisher,
				cfg.Market.BidTTL.Duration,
			),
			Deals: deals.NewService(repositories.NewDealRepository(bunDB), publisher),
			Chats: chats.NewService(
				repositories.NewChatRepository(bunDB),
				repositories.NewChatUnitOfWork(tm),
				publisher,
			),
			Ledger: ledger.NewService(
				repositories.NewLedgerRepository(bunDB),
				repositories.NewLedgerUnitOfWork(tm),
			),
			Listings:       listings.NewService(repositories.NewListingRepository(bunDB), images),
			Metrics:        metrics.New(),
			RateLimitStore: rateLimitStore,
			Version:        Version,
		}

		app := api.NewApp(webApp)

		errCh := make(chan error, 1)
		go func() {
			logger.LogSystem("HTTP server listening", slog.String("address", cfg.Web.Address()))
			errCh <- app.Listen(cfg.Web.Address())
		}()

		select {
		case err := <-errCh:
			logger.LogError("HTTP server stopped", err)
			return err
		case <-ctx.Done():
		}

		logger.LogSystem("Shutting down", slog.Duration("uptime", logger.Uptime()))
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.LogError("Server forced to shutdown", err)
			return err
		}
		logger.LogSystem("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCMD)
}

func newPublisher() (events.Publisher, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.LogSystem("No Kafka brokers configured, events are dropped")
		return events.NopPublisher{}, func() {}
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	logger.LogSystem("Publishing events to Kafka",
		slog.Any("brokers", cfg.Kafka.Brokers),
		slog.String("topic", cfg.Kafka.Topic))

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.LogError("Failed to close Kafka writer", err)
		}
	}
}

// newRateLimitStore uses Redis when configured so the limit holds across
// instances, and an in-process store otherwise.
func newRateLimitStore(ctx context.Context) (middleware.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		store := middleware.NewMemoryStore()
		go store.Run(ctx, time.Minute, cfg.RateLimit.Window.Duration)
		return store, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.LogError("Failed to connect to Redis", err, slog.String("addr", cfg.Redis.Addr))
		return nil, nil, err
	}

	logger.LogSystem("Rate limits shared through Redis", slog.String("addr", cfg.Redis.Addr))
	return middleware.NewRedisStore(client), func() { _ = client.Close() }, nil
}
