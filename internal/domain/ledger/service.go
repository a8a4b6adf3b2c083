package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

const maxPageSize = 100

type Service struct {
	repo Repository
	uow  UnitOfWork
	now  func() time.Time
}

func NewService(repo Repository, uow UnitOfWork) *Service {
	return &Service{
		repo: repo,
		uow:  uow,
		now:  time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Credit(ctx context.Context, e Entry) (*models.CoinTransaction, error) {
	var record *models.CoinTransaction
	err := s.uow.Do(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		record, err = Credit(ctx, tx, e, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Coins credited",
		slog.String("user_id", e.UserID),
		slog.String("kind", string(e.Kind)),
		slog.Int64("amount", e.Amount),
		slog.Int64("balance", record.BalanceAfter))
	return record, nil
}

func (s *Service) Debit(ctx context.Context, e Entry) (*models.CoinTransaction, error) {
	var record *models.CoinTransaction
	err := s.uow.Do(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		record, err = Debit(ctx, tx, e, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Coins debited",
		slog.String("user_id", e.UserID),
		slog.String("kind", string(e.Kind)),
		slog.Int64("amount", e.Amount),
		slog.Int64("balance", record.BalanceAfter))
	return record, nil
}

func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

// History returns one page of the user's transactions, newest first, and the total count.
func (s *Service) History(ctx context.Context, userID string, page, limit int) ([]*models.CoinTransaction, int, error) {
	page, limit = PageBounds(page, limit)
	return s.repo.ListTransactions(ctx, userID, limit, (page-1)*limit)
}

// PageBounds clamps a requested page and page size to the values History uses.
func PageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = 20
	}
	return page, limit
}
