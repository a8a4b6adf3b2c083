package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type LedgerRepository struct {
	db bun.IDB
}

func NewLedgerRepository(db bun.IDB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Column("balance").
		Where("id = ?", userID).
		Scan(ctx, &balance)
	if err != nil {
		return 0, lookupErr(err, "user")
	}
	return balance, nil
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*models.CoinTransaction, int, error) {
	var txs []*models.CoinTransaction
	total, err := r.db.NewSelect().
		Model(&txs).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coin transactions: %w", err)
	}
	return txs, total, nil
}

// ledgerTx writes balances and their audit rows through one transaction.
type ledgerTx struct {
	db bun.IDB
}

func (t ledgerTx) LockBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := t.db.NewSelect().
		Model((*models.User)(nil)).
		Column("balance").
		Where("id = ?", userID).
		For("UPDATE").
		Scan(ctx, &balance)
	if err != nil {
		return 0, lookupErr(err, "user")
	}
	return balance, nil
}

func (t ledgerTx) AddBalance(ctx context.Context, userID string, delta int64) error {
	result, err := t.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("balance = balance + ?", delta).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (t ledgerTx) InsertCoinTransaction(ctx context.Context, ct *models.CoinTransaction) error {
	if _, err := t.db.NewInsert().Model(ct).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record coin transaction: %w", err)
	}
	return nil
}
