package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const DefaultTxTimeout = 30 * time.Second

// TransactionOptions configures transaction behavior
type TransactionOptions struct {
	IsolationLevel sql.IsolationLevel
	Timeout        time.Duration
}

// TransactionManager runs functions inside a bun transaction that commits when
// the function returns nil and rolls back otherwise.
type TransactionManager struct {
	db      *bun.DB
	timeout time.Duration
}

func NewTransactionManager(db *bun.DB, timeout time.Duration) *TransactionManager {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &TransactionManager{db: db, timeout: timeout}
}

// StandardOptions is READ COMMITTED. Callers serialize on rows with SELECT ... FOR UPDATE.
func (tm *TransactionManager) StandardOptions() *TransactionOptions {
	return &TransactionOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        tm.timeout,
	}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, opts *TransactionOptions, fn func(context.Context, bun.Tx) error) error {
	if opts == nil {
		opts = tm.StandardOptions()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tx, err := tm.db.BeginTx(timeoutCtx, &sql.TxOptions{
		Isolation: opts.IsolationLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(timeoutCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UnitOfWork exposes a transaction to domain code through a typed view T.
// *UnitOfWork[bids.Tx] satisfies bids.UnitOfWork, and so on.
type UnitOfWork[T any] struct {
	tm   *TransactionManager
	opts *TransactionOptions
	bind func(bun.Tx) T
}

func NewUnitOfWork[T any](tm *TransactionManager, bind func(bun.Tx) T) *UnitOfWork[T] {
	return &UnitOfWork[T]{tm: tm, opts: tm.StandardOptions(), bind: bind}
}

func (u *UnitOfWork[T]) Do(ctx context.Context, fn func(context.Context, T) error) error {
	return u.tm.WithTransaction(ctx, u.opts, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, u.bind(tx))
	})
}
