package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

// Entry describes one balance change. Amount is always positive; Credit and
// Debit decide the sign.
type Entry struct {
	UserID      string
	Amount      int64
	Kind        models.CoinTransactionKind
	Description string
	BidID       *string
}

func (e Entry) validate() error {
	if e.UserID == "" {
		return apperr.BadRequest("user id is required")
	}
	if e.Amount <= 0 {
		return apperr.BadRequest("amount must be positive").WithDetail("amount", fmt.Sprint(e.Amount))
	}
	if e.Kind == "" {
		return apperr.BadRequest("transaction kind is required")
	}
	return nil
}

// Credit adds e.Amount to the user's balance inside tx and records it.
func Credit(ctx context.Context, tx Tx, e Entry, now time.Time) (*models.CoinTransaction, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	return apply(ctx, tx, e, e.Amount, now)
}

// Debit removes e.Amount from the user's balance inside tx and records it.
// The balance never goes negative.
func Debit(ctx context.Context, tx Tx, e Entry, now time.Time) (*models.CoinTransaction, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	return apply(ctx, tx, e, -e.Amount, now)
}

func apply(ctx context.Context, tx Tx, e Entry, delta int64, now time.Time) (*models.CoinTransaction, error) {
	balance, err := tx.LockBalance(ctx, e.UserID)
	if err != nil {
		return nil, err
	}

	after := balance + delta
	if after < 0 {
		return nil, apperr.InvalidState("insufficient coins").
			WithDetail("balance", fmt.Sprint(balance)).
			WithDetail("required", fmt.Sprint(-delta))
	}

	if err := tx.AddBalance(ctx, e.UserID, delta); err != nil {
		return nil, err
	}

	record := &models.CoinTransaction{
		ID:           uuid.NewString(),
		UserID:       e.UserID,
		Amount:       delta,
		Kind:         e.Kind,
		Description:  e.Description,
		BalanceAfter: after,
		BidID:        e.BidID,
		CreatedAt:    now,
	}
	if err := tx.InsertCoinTransaction(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
