package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/domain/ledger/mock"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// runInline makes the unit of work call fn with tx directly.
func runInline(uow *mock.MockUnitOfWork, tx ledger.Tx) {
	uow.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, ledger.Tx) error) error {
			return fn(ctx, tx)
		})
}

func TestService_Credit(t *testing.T) {
	ctrl := gomock.NewController(t)
	tx := mock.NewMockTx(ctrl)
	uow := mock.NewMockUnitOfWork(ctrl)
	runInline(uow, tx)

	tx.EXPECT().LockBalance(gomock.Any(), "u1").Return(int64(50), nil)
	tx.EXPECT().AddBalance(gomock.Any(), "u1", int64(25)).Return(nil)
	tx.EXPECT().
		InsertCoinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ct *models.CoinTransaction) error {
			assert.Equal(t, int64(25), ct.Amount)
			assert.Equal(t, int64(75), ct.BalanceAfter)
			assert.Equal(t, models.CoinRecharge, ct.Kind)
			assert.Equal(t, fixedNow, ct.CreatedAt)
			assert.NotEmpty(t, ct.ID)
			return nil
		})

	s := ledger.NewService(mock.NewMockRepository(ctrl), uow).WithClock(func() time.Time { return fixedNow })
	got, err := s.Credit(context.Background(), ledger.Entry{
		UserID:      "u1",
		Amount:      25,
		Kind:        models.CoinRecharge,
		Description: "Recharge",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(75), got.BalanceAfter)
}

func TestService_Debit(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		amount   int64
		wantKind apperr.Kind
		wantErr  bool
	}{
		{name: "Success", balance: 40, amount: 30},
		{name: "Exact balance", balance: 30, amount: 30},
		{name: "Insufficient", balance: 10, amount: 30, wantErr: true, wantKind: apperr.KindInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tx := mock.NewMockTx(ctrl)
			uow := mock.NewMockUnitOfWork(ctrl)
			runInline(uow, tx)

			tx.EXPECT().LockBalance(gomock.Any(), "u1").Return(tt.balance, nil)
			if !tt.wantErr {
				tx.EXPECT().AddBalance(gomock.Any(), "u1", -tt.amount).Return(nil)
				tx.EXPECT().InsertCoinTransaction(gomock.Any(), gomock.Any()).Return(nil)
			}

			s := ledger.NewService(mock.NewMockRepository(ctrl), uow)
			got, err := s.Debit(context.Background(), ledger.Entry{UserID: "u1", Amount: tt.amount, Kind: models.CoinBidDebit})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Service.Debit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			assert.Equal(t, -tt.amount, got.Amount)
			assert.Equal(t, tt.balance-tt.amount, got.BalanceAfter)
		})
	}
}

func TestCredit_InvalidEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	tx := mock.NewMockTx(ctrl)

	tests := []struct {
		name  string
		entry ledger.Entry
	}{
		{"zero amount", ledger.Entry{UserID: "u1", Amount: 0, Kind: models.CoinRecharge}},
		{"negative amount", ledger.Entry{UserID: "u1", Amount: -5, Kind: models.CoinRecharge}},
		{"missing user", ledger.Entry{Amount: 5, Kind: models.CoinRecharge}},
		{"missing kind", ledger.Entry{UserID: "u1", Amount: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Credit(context.Background(), tx, tt.entry, fixedNow)
			assert.True(t, errors.Is(err, apperr.ErrBadRequest), "got %v", err)
		})
	}
}

func TestCredit_PropagatesLockError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tx := mock.NewMockTx(ctrl)
	tx.EXPECT().LockBalance(gomock.Any(), "ghost").Return(int64(0), apperr.NotFound("user not found"))

	_, err := ledger.Credit(context.Background(), tx, ledger.Entry{UserID: "ghost", Amount: 5, Kind: models.CoinBidRefund}, fixedNow)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	records := []*models.CoinTransaction{{ID: "t1"}, {ID: "t2"}}

	repo.EXPECT().ListTransactions(gomock.Any(), "u1", 20, 20).Return(records, 22, nil)
	repo.EXPECT().ListTransactions(gomock.Any(), "u1", 20, 0).Return(records, 22, nil)

	s := ledger.NewService(repo, mock.NewMockUnitOfWork(ctrl))

	got, total, err := s.History(context.Background(), "u1", 2, 20)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 22, total)

	// out of range paging falls back to defaults
	_, _, err = s.History(context.Background(), "u1", 0, 1000)
	require.NoError(t, err)
}
