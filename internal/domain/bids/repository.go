package bids

import (
	"context"
	"time"

	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

// Tx is what bid transitions need from one database transaction.
// Lock* methods hold a row lock until commit.
type Tx interface {
	ledger.Tx

	GetBid(ctx context.Context, id string) (*models.Bid, error)
	LockBid(ctx context.Context, id string) (*models.Bid, error)
	LockListing(ctx context.Context, id string) (*models.Listing, error)
	// PendingBidsOnListing locks every PENDING bid on the listing except exceptID.
	PendingBidsOnListing(ctx context.Context, listingID, exceptID string) ([]*models.Bid, error)

	InsertBid(ctx context.Context, bid *models.Bid) error
	ExpireBid(ctx context.Context, id string, at time.Time) error
	AcceptBid(ctx context.Context, id string, at time.Time) error
	RejectBids(ctx context.Context, ids []string, at time.Time) error

	InsertDeal(ctx context.Context, deal *models.Deal) error
	InsertChat(ctx context.Context, chat *models.Chat) error
	MarkListingSold(ctx context.Context, listingID string, at time.Time) error
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(context.Context, Tx) error) error
}

type Repository interface {
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	ListByListing(ctx context.Context, listingID string) ([]*models.Bid, error)
	ListByListingAndBidder(ctx context.Context, listingID, bidderID string) ([]*models.Bid, error)
}
