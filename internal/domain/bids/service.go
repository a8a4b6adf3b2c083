package bids

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/events"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

const DefaultBidTTL = 48 * time.Hour

// Acceptance is everything one successful AcceptBid changed.
type Acceptance struct {
	Bid      *models.Bid               `json:"bid"`
	Deal     *models.Deal              `json:"deal"`
	Chat     *models.Chat              `json:"chat"`
	Rejected []*models.Bid             `json:"rejected_bids"`
	Refunds  []*models.CoinTransaction `json:"refunds"`
}

type PlaceBidInput struct {
	ListingID string
	BidderID  string
	Amount    int64
	CoinsUsed int64
}

type Service struct {
	repo      Repository
	uow       UnitOfWork
	publisher events.Publisher
	bidTTL    time.Duration
	now       func() time.Time
}

func NewService(repo Repository, uow UnitOfWork, publisher events.Publisher, bidTTL time.Duration) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if bidTTL <= 0 {
		bidTTL = DefaultBidTTL
	}
	return &Service{
		repo:      repo,
		uow:       uow,
		publisher: publisher,
		bidTTL:    bidTTL,
		now:       time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AcceptBid lets the listing's seller accept a pending bid. In one transaction
// it rejects and refunds every other pending bid, opens a deal with its chat
// and marks the listing sold.
//
// A bid past its deadline is moved to EXPIRED and that change is committed
// before the call fails with an Expired error.
func (s *Service) AcceptBid(ctx context.Context, bidID, callerID string) (*Acceptance, error) {
	now := s.now().UTC()

	var (
		result  *Acceptance
		expired *models.Bid
	)
	err := s.uow.Do(ctx, func(ctx context.Context, tx Tx) error {
		bid, err := tx.GetBid(ctx, bidID)
		if err != nil {
			return err
		}

		// listing first, then bids: every writer on a listing takes locks in this order
		listing, err := tx.LockListing(ctx, bid.ListingID)
		if err != nil {
			return err
		}
		if listing.SellerID != callerID {
			return apperr.Forbidden("only the seller can accept bids on this listing")
		}

		bid, err = tx.LockBid(ctx, bidID)
		if err != nil {
			return err
		}
		if bid.Status != models.BidPending {
			return apperr.InvalidState("bid is not pending").WithDetail("status", string(bid.Status))
		}

		if bid.IsExpired(now) {
			if err := tx.ExpireBid(ctx, bid.ID, now); err != nil {
				return err
			}
			bid.Status = models.BidExpired
			bid.ExpiredAt = &now
			expired = bid
			return nil
		}

		if listing.Status != models.ListingActive {
			return apperr.InvalidState("listing is not active").WithDetail("status", string(listing.Status))
		}

		result, err = accept(ctx, tx, listing, bid, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if expired != nil {
		slog.Info("Bid expired on accept",
			slog.String("bid_id", expired.ID),
			slog.String("listing_id", expired.ListingID))
		events.PublishLogged(ctx, s.publisher, events.New(events.BidExpired, expired.ListingID, expired))
		return nil, apperr.Expired("bid has expired").WithDetail("expires_at", expired.ExpiresAt.Format(time.RFC3339))
	}

	slog.Info("Bid accepted",
		slog.String("bid_id", result.Bid.ID),
		slog.String("listing_id", result.Bid.ListingID),
		slog.String("deal_id", result.Deal.ID),
		slog.Int("rejected", len(result.Rejected)))
	events.PublishLogged(ctx, s.publisher, events.New(events.DealCreated, result.Deal.ListingID, result))
	return result, nil
}

func accept(ctx context.Context, tx Tx, listing *models.Listing, bid *models.Bid, now time.Time) (*Acceptance, error) {
	others, err := tx.PendingBidsOnListing(ctx, listing.ID, bid.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.AcceptBid(ctx, bid.ID, now); err != nil {
		return nil, err
	}
	bid.Status = models.BidAccepted
	bid.AcceptedAt = &now
	bid.UpdatedAt = now

	result := &Acceptance{
		Bid:      bid,
		Rejected: make([]*models.Bid, 0, len(others)),
		Refunds:  make([]*models.CoinTransaction, 0, len(others)),
	}

	if len(others) > 0 {
		ids := make([]string, len(others))
		for i, b := range others {
			ids[i] = b.ID
		}
		if err := tx.RejectBids(ctx, ids, now); err != nil {
			return nil, err
		}
	}

	for _, b := range others {
		b.Status = models.BidRejected
		b.RejectedAt = &now
		b.UpdatedAt = now
		result.Rejected = append(result.Rejected, b)

		if b.CoinsUsed <= 0 {
			continue
		}
		refundedBid := b.ID
		refund, err := ledger.Credit(ctx, tx, ledger.Entry{
			UserID:      b.BidderID,
			Amount:      b.CoinsUsed,
			Kind:        models.CoinBidRefund,
			Description: fmt.Sprintf("Refund for rejected bid on %q", listing.Title),
			BidID:       &refundedBid,
		}, now)
		if err != nil {
			return nil, fmt.Errorf("failed to refund bid %s: %w", b.ID, err)
		}
		result.Refunds = append(result.Refunds, refund)
	}

	result.Deal = &models.Deal{
		ID:        uuid.NewString(),
		ListingID: listing.ID,
		BidID:     bid.ID,
		SellerID:  listing.SellerID,
		BuyerID:   bid.BidderID,
		Amount:    bid.Amount,
		Status:    models.DealInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.InsertDeal(ctx, result.Deal); err != nil {
		return nil, err
	}

	result.Chat = &models.Chat{
		ID:        uuid.NewString(),
		DealID:    result.Deal.ID,
		ListingID: listing.ID,
		BuyerID:   bid.BidderID,
		SellerID:  listing.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.InsertChat(ctx, result.Chat); err != nil {
		return nil, err
	}

	if err := tx.MarkListingSold(ctx, listing.ID, now); err != nil {
		return nil, err
	}
	return result, nil
}

// PlaceBid opens a PENDING bid and escrows its coins from the bidder's balance.
func (s *Service) PlaceBid(ctx context.Context, in PlaceBidInput) (*models.Bid, error) {
	if in.Amount <= 0 {
		return nil, apperr.BadRequest("amount must be positive")
	}
	if in.CoinsUsed < 0 {
		return nil, apperr.BadRequest("coins_used cannot be negative")
	}

	now := s.now().UTC()
	var bid *models.Bid
	err := s.uow.Do(ctx, func(ctx context.Context, tx Tx) error {
		listing, err := tx.LockListing(ctx, in.ListingID)
		if err != nil {
			return err
		}
		if listing.SellerID == in.BidderID {
			return apperr.Forbidden("sellers cannot bid on their own listing")
		}
		if listing.Status != models.ListingActive {
			return apperr.InvalidState("listing is not accepting bids").WithDetail("status", string(listing.Status))
		}

		expiresAt := now.Add(s.bidTTL)
		bid = &models.Bid{
			ID:        uuid.NewString(),
			ListingID: listing.ID,
			BidderID:  in.BidderID,
			Amount:    in.Amount,
			CoinsUsed: in.CoinsUsed,
			Status:    models.BidPending,
			ExpiresAt: &expiresAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.InsertBid(ctx, bid); err != nil {
			return err
		}

		if in.CoinsUsed == 0 {
			return nil
		}
		_, err = ledger.Debit(ctx, tx, ledger.Entry{
			UserID:      in.BidderID,
			Amount:      in.CoinsUsed,
			Kind:        models.CoinBidDebit,
			Description: fmt.Sprintf("Coins held for bid on %q", listing.Title),
			BidID:       &bid.ID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bid placed",
		slog.String("bid_id", bid.ID),
		slog.String("listing_id", bid.ListingID),
		slog.Int64("amount", bid.Amount),
		slog.Int64("coins_used", bid.CoinsUsed))
	events.PublishLogged(ctx, s.publisher, events.New(events.BidPlaced, bid.ListingID, bid))
	return bid, nil
}

// ListBids returns all bids on the listing to its seller and only the
// caller's own bids to anyone else.
func (s *Service) ListBids(ctx context.Context, listingID, callerID string) ([]*models.Bid, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == callerID {
		return s.repo.ListByListing(ctx, listingID)
	}
	return s.repo.ListByListingAndBidder(ctx, listingID, callerID)
}
