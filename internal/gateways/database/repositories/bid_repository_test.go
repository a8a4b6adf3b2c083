package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/domain/bids"
	"github.com/sellfast/marketplace/internal/gateways/database"
	"github.com/sellfast/marketplace/internal/gateways/database/repositories"
)

var (
	testNow      = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bidColumns   = []string{"id", "listing_id", "bidder_id", "amount", "coins_used", "status", "expires_at"}
	listingCols  = []string{"id", "seller_id", "title", "status"}
	selectBid    = `SELECT .+ FROM "bids" AS "b" WHERE \(id = 'B2'\)`
	lockListing  = `SELECT .+ FROM "listings" AS "l" WHERE \(id = 'L1'\) FOR UPDATE`
	lockBid      = `SELECT .+ FROM "bids" AS "b" WHERE \(id = 'B2'\) FOR UPDATE`
	lockPending  = `SELECT .+ FROM "bids" AS "b" WHERE \(listing_id = 'L1'\) AND \(status = 'PENDING'\) AND \(id <> 'B2'\).+FOR UPDATE`
	acceptB2     = `UPDATE "bids".+SET status = 'ACCEPTED'.+"accepted_at".+WHERE \(id = 'B2'\) AND \(status = 'PENDING'\)`
	expireB2     = `UPDATE "bids".+SET status = 'EXPIRED'.+"expired_at".+WHERE \(id = 'B2'\) AND \(status = 'PENDING'\)`
	rejectOthers = `UPDATE "bids".+SET status = 'REJECTED'.+WHERE \(id IN \('B1'\)\) AND \(status = 'PENDING'\)`
)

func newBidUnit(t *testing.T) (*database.UnitOfWork[bids.Tx], sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return repositories.NewBidUnitOfWork(database.NewTransactionManager(db, time.Second)), mock
}

func TestBidTx_GuardedUpdates(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		rows    int64
		run     func(ctx context.Context, tx bids.Tx) error
		wantErr error
		wantMsg string
	}{
		{
			name:  "Accept a pending bid",
			query: acceptB2,
			rows:  1,
			run: func(ctx context.Context, tx bids.Tx) error {
				return tx.AcceptBid(ctx, "B2", testNow)
			},
		},
		{
			name:  "Accept a bid another request already moved",
			query: acceptB2,
			rows:  0,
			run: func(ctx context.Context, tx bids.Tx) error {
				return tx.AcceptBid(ctx, "B2", testNow)
			},
			wantErr: apperr.ErrInvalidState,
		},
		{
			name:  "Expire a bid that is no longer pending",
			query: expireB2,
			rows:  0,
			run: func(ctx context.Context, tx bids.Tx) error {
				return tx.ExpireBid(ctx, "B2", testNow)
			},
			wantErr: apperr.ErrInvalidState,
		},
		{
			name:  "Reject fewer bids than were locked",
			query: rejectOthers,
			rows:  0,
			run: func(ctx context.Context, tx bids.Tx) error {
				return tx.RejectBids(ctx, []string{"B1"}, testNow)
			},
			wantMsg: "rejected 0 of 1 bids",
		},
		{
			name:  "Sell a listing that is no longer active",
			query: `UPDATE "listings".+SET status = 'SOLD'.+WHERE \(id = 'L1'\) AND \(status = 'ACTIVE'\)`,
			rows:  0,
			run: func(ctx context.Context, tx bids.Tx) error {
				return tx.MarkListingSold(ctx, "L1", testNow)
			},
			wantErr: apperr.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow, mock := newBidUnit(t)
			mock.ExpectBegin()
			mock.ExpectExec(tt.query).WillReturnResult(sqlmock.NewResult(0, tt.rows))
			if tt.wantErr != nil || tt.wantMsg != "" {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			err := uow.Do(context.Background(), tt.run)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				assert.ErrorContains(t, err, tt.wantMsg)
				assert.NotErrorIs(t, err, apperr.ErrInvalidState)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBidTx_RejectBidsWithNothingToReject(t *testing.T) {
	uow, mock := newBidUnit(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(ctx context.Context, tx bids.Tx) error {
		return tx.RejectBids(ctx, nil, testNow)
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBidTx_LockBidNotFound(t *testing.T) {
	uow, mock := newBidUnit(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBid).WillReturnRows(sqlmock.NewRows(bidColumns))
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(ctx context.Context, tx bids.Tx) error {
		_, err := tx.LockBid(ctx, "B2")
		return err
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectAcceptReads(mock sqlmock.Sqlmock, expiresAt time.Time) {
	bidRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(bidColumns).
			AddRow("B2", "L1", "U-buyer", int64(900), int64(0), "PENDING", expiresAt)
	}
	mock.ExpectBegin()
	mock.ExpectQuery(selectBid).WillReturnRows(bidRow())
	mock.ExpectQuery(lockListing).WillReturnRows(sqlmock.NewRows(listingCols).
		AddRow("L1", "U-seller", "Road bike", "ACTIVE"))
	mock.ExpectQuery(lockBid).WillReturnRows(bidRow())
}

func TestAcceptBid_Transaction(t *testing.T) {
	t.Run("Expired bid commits the expiry and fails", func(t *testing.T) {
		uow, mock := newBidUnit(t)
		expectAcceptReads(mock, testNow.Add(-time.Minute))
		mock.ExpectExec(expireB2).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := bids.NewService(nil, uow, nil, time.Hour).WithClock(func() time.Time { return testNow })
		result, err := svc.AcceptBid(context.Background(), "B2", "U-seller")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperr.ErrExpired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Short reject count rolls back the acceptance", func(t *testing.T) {
		uow, mock := newBidUnit(t)
		expectAcceptReads(mock, testNow.Add(time.Hour))
		mock.ExpectQuery(lockPending).WillReturnRows(sqlmock.NewRows(bidColumns).
			AddRow("B1", "L1", "U-other", int64(800), int64(0), "PENDING", testNow.Add(time.Hour)))
		mock.ExpectExec(acceptB2).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(rejectOthers).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		svc := bids.NewService(nil, uow, nil, time.Hour).WithClock(func() time.Time { return testNow })
		result, err := svc.AcceptBid(context.Background(), "B2", "U-seller")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "rejected 0 of 1 bids")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Concurrent acceptance loses the guarded update", func(t *testing.T) {
		uow, mock := newBidUnit(t)
		expectAcceptReads(mock, testNow.Add(time.Hour))
		mock.ExpectQuery(lockPending).WillReturnRows(sqlmock.NewRows(bidColumns))
		mock.ExpectExec(acceptB2).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		svc := bids.NewService(nil, uow, nil, time.Hour).WithClock(func() time.Time { return testNow })
		_, err := svc.AcceptBid(context.Background(), "B2", "U-seller")

		assert.ErrorIs(t, err, apperr.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error aborts before any write", func(t *testing.T) {
		uow, mock := newBidUnit(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectBid).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		svc := bids.NewService(nil, uow, nil, time.Hour)
		_, err := svc.AcceptBid(context.Background(), "B2", "U-seller")

		assert.ErrorContains(t, err, "failed to get bid")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
