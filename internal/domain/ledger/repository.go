package ledger

import (
	"context"

	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

// Tx is the slice of a database transaction the ledger writes through.
// Other units of work embed it so refunds and escrow debits commit together
// with the state change that caused them.
type Tx interface {
	// LockBalance reads the user's balance with a row lock held until commit.
	LockBalance(ctx context.Context, userID string) (int64, error)
	AddBalance(ctx context.Context, userID string, delta int64) error
	InsertCoinTransaction(ctx context.Context, t *models.CoinTransaction) error
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(context.Context, Tx) error) error
}

type Repository interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*models.CoinTransaction, int, error)
}
