package database_test

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

	"github.com/sellfast/marketplace/internal/gateways/database"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestTransactionManager_WithTransaction(t *testing.T) {
	errStep := errors.New("second step failed")

	tests := []struct {
		name    string
		expect  func(mock sqlmock.Sqlmock)
		fn      func(ctx context.Context, tx bun.Tx) error
		wantErr error
		wantMsg string
	}{
		{
			name: "Commits when every step succeeds",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users SET balance = balance - 20`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE users SET balance = balance \+ 20`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.ExecContext(ctx, "UPDATE users SET balance = balance - 20"); err != nil {
					return err
				}
				_, err := tx.ExecContext(ctx, "UPDATE users SET balance = balance + 20")
				return err
			},
		},
		{
			name: "Rolls back the first write when a later step fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users SET balance = balance - 20`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.ExecContext(ctx, "UPDATE users SET balance = balance - 20"); err != nil {
					return err
				}
				return errStep
			},
			wantErr: errStep,
		},
		{
			name: "Reports a failed commit",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn:      func(context.Context, bun.Tx) error { return nil },
			wantMsg: "failed to commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.expect(mock)

			tm := database.NewTransactionManager(db, time.Second)
			err := tm.WithTransaction(context.Background(), nil, tt.fn)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				assert.ErrorContains(t, err, tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := database.NewTransactionManager(db, 0).WithTransaction(context.Background(), nil, func(context.Context, bun.Tx) error {
		called = true
		return nil
	})

	assert.ErrorContains(t, err, "failed to start transaction")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_Do(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	type view struct{ tx bun.Tx }
	uow := database.NewUnitOfWork(database.NewTransactionManager(db, time.Second), func(tx bun.Tx) view {
		return view{tx: tx}
	})

	errAbort := errors.New("abort")
	err := uow.Do(context.Background(), func(ctx context.Context, v view) error {
		assert.NotNil(t, v.tx.Tx)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errAbort
	})

	assert.ErrorIs(t, err, errAbort)
	assert.NoError(t, mock.ExpectationsWereMet())
}
