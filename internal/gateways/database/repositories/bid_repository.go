package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type BidRepository struct {
	db bun.IDB
}

func NewBidRepository(db bun.IDB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "listing")
	}
	return listing, nil
}

func (r *BidRepository) ListByListing(ctx context.Context, listingID string) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := r.db.NewSelect().
		Model(&bids).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

func (r *BidRepository) ListByListingAndBidder(ctx context.Context, listingID, bidderID string) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := r.db.NewSelect().
		Model(&bids).
		Where("listing_id = ?", listingID).
		Where("bidder_id = ?", bidderID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

// bidTx carries bid acceptance and placement. Listing rows are locked before
// bid rows.
type bidTx struct {
	ledgerTx
}

func (t bidTx) GetBid(ctx context.Context, id string) (*models.Bid, error) {
	bid := new(models.Bid)
	err := t.db.NewSelect().
		Model(bid).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "bid")
	}
	return bid, nil
}

func (t bidTx) LockBid(ctx context.Context, id string) (*models.Bid, error) {
	bid := new(models.Bid)
	err := t.db.NewSelect().
		Model(bid).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "bid")
	}
	return bid, nil
}

func (t bidTx) LockListing(ctx context.Context, id string) (*models.Listing, error) {
	listing := new(models.Listing)
	err := t.db.NewSelect().
		Model(listing).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "listing")
	}
	return listing, nil
}

func (t bidTx) PendingBidsOnListing(ctx context.Context, listingID, exceptID string) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := t.db.NewSelect().
		Model(&bids).
		Where("listing_id = ?", listingID).
		Where("status = ?", models.BidPending).
		Where("id <> ?", exceptID).
		Order("created_at ASC").
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock pending bids: %w", err)
	}
	return bids, nil
}

func (t bidTx) InsertBid(ctx context.Context, bid *models.Bid) error {
	if _, err := t.db.NewInsert().Model(bid).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

func (t bidTx) ExpireBid(ctx context.Context, id string, at time.Time) error {
	return t.transition(ctx, id, models.BidExpired, "expired_at", at)
}

func (t bidTx) AcceptBid(ctx context.Context, id string, at time.Time) error {
	return t.transition(ctx, id, models.BidAccepted, "accepted_at", at)
}

// transition moves one PENDING bid to status and stamps column.
func (t bidTx) transition(ctx context.Context, id string, status models.BidStatus, column string, at time.Time) error {
	result, err := t.db.NewUpdate().
		Model((*models.Bid)(nil)).
		Set("status = ?", status).
		Set("? = ?", bun.Ident(column), at).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("status = ?", models.BidPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark bid %s: %w", status, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return apperr.InvalidState("bid is not pending")
	}
	return nil
}

func (t bidTx) RejectBids(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	result, err := t.db.NewUpdate().
		Model((*models.Bid)(nil)).
		Set("status = ?", models.BidRejected).
		Set("rejected_at = ?", at).
		Set("updated_at = ?", at).
		Where("id IN (?)", bun.In(ids)).
		Where("status = ?", models.BidPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reject bids: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows != int64(len(ids)) {
		return fmt.Errorf("rejected %d of %d bids", rows, len(ids))
	}
	return nil
}

func (t bidTx) InsertDeal(ctx context.Context, deal *models.Deal) error {
	if _, err := t.db.NewInsert().Model(deal).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

func (t bidTx) InsertChat(ctx context.Context, chat *models.Chat) error {
	if _, err := t.db.NewInsert().Model(chat).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (t bidTx) MarkListingSold(ctx context.Context, listingID string, at time.Time) error {
	result, err := t.db.NewUpdate().
		Model((*models.Listing)(nil)).
		Set("status = ?", models.ListingSold).
		Set("updated_at = ?", at).
		Where("id = ?", listingID).
		Where("status = ?", models.ListingActive).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark listing sold: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return apperr.InvalidState("listing is not active")
	}
	return nil
}
