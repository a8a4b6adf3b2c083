package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type tableSpec struct {
	model       any
	foreignKeys []string
}

// tables are listed parents first so foreign keys resolve.
var tables = []tableSpec{
	{model: (*models.User)(nil)},
	{model: (*models.Category)(nil)},
	{model: (*models.Company)(nil)},
	{
		model: (*models.Item)(nil),
		foreignKeys: []string{
			`("category_id") REFERENCES "categories" ("id")`,
		},
	},
	{
		model: (*models.Listing)(nil),
		foreignKeys: []string{
			`("seller_id") REFERENCES "users" ("id")`,
			`("item_id") REFERENCES "items" ("id")`,
			`("company_id") REFERENCES "companies" ("id")`,
		},
	},
	{
		model: (*models.ListingSpecification)(nil),
		foreignKeys: []string{
			`("listing_id") REFERENCES "listings" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*models.Bid)(nil),
		foreignKeys: []string{
			`("listing_id") REFERENCES "listings" ("id") ON DELETE CASCADE`,
			`("bidder_id") REFERENCES "users" ("id")`,
		},
	},
	{
		model: (*models.Deal)(nil),
		foreignKeys: []string{
			`("listing_id") REFERENCES "listings" ("id") ON DELETE CASCADE`,
			`("bid_id") REFERENCES "bids" ("id") ON DELETE CASCADE`,
			`("seller_id") REFERENCES "users" ("id")`,
			`("buyer_id") REFERENCES "users" ("id")`,
		},
	},
	{
		model: (*models.Chat)(nil),
		foreignKeys: []string{
			`("deal_id") REFERENCES "deals" ("id") ON DELETE CASCADE`,
			`("listing_id") REFERENCES "listings" ("id") ON DELETE CASCADE`,
			`("buyer_id") REFERENCES "users" ("id")`,
			`("seller_id") REFERENCES "users" ("id")`,
		},
	},
	{
		model: (*models.ChatMessage)(nil),
		foreignKeys: []string{
			`("chat_id") REFERENCES "chats" ("id") ON DELETE CASCADE`,
			`("sender_id") REFERENCES "users" ("id")`,
		},
	},
	{
		model: (*models.CoinTransaction)(nil),
		foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id")`,
			`("bid_id") REFERENCES "bids" ("id") ON DELETE SET NULL`,
		},
	},
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);",
	"CREATE INDEX IF NOT EXISTS idx_listings_seller_id ON listings(seller_id);",
	"CREATE INDEX IF NOT EXISTS idx_listing_specifications_listing ON listing_specifications(listing_id, position);",
	"CREATE INDEX IF NOT EXISTS idx_bids_listing_status ON bids(listing_id, status);",
	"CREATE INDEX IF NOT EXISTS idx_bids_bidder_id ON bids(bidder_id);",
	"CREATE INDEX IF NOT EXISTS idx_bids_pending ON bids(listing_id, expires_at) WHERE status = 'PENDING';",
	// at most one accepted bid per listing
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_bids_one_accepted ON bids(listing_id) WHERE status = 'ACCEPTED';",
	"CREATE INDEX IF NOT EXISTS idx_deals_buyer_id ON deals(buyer_id);",
	"CREATE INDEX IF NOT EXISTS idx_deals_seller_id ON deals(seller_id);",
	"CREATE INDEX IF NOT EXISTS idx_chats_buyer_updated ON chats(buyer_id, updated_at DESC);",
	"CREATE INDEX IF NOT EXISTS idx_chats_seller_updated ON chats(seller_id, updated_at DESC);",
	"CREATE INDEX IF NOT EXISTS idx_chat_messages_chat_created ON chat_messages(chat_id, created_at);",
	"CREATE INDEX IF NOT EXISTS idx_coin_transactions_user_created ON coin_transactions(user_id, created_at DESC);",
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	for _, t := range tables {
		query := db.bunDB.NewCreateTable().
			Model(t.model).
			IfNotExists()
		for _, fk := range t.foreignKeys {
			query = query.ForeignKey(fk)
		}

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", t.model, err)
		}
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("tables", len(tables)),
		slog.Int("indexes", len(indexes)))
	return nil
}
