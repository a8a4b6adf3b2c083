package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("bid not found"), KindNotFound},
		{"wrapped forbidden", fmt.Errorf("accept: %w", Forbidden("not the seller")), KindForbidden},
		{"expired", Expired("bid has expired"), KindExpired},
		{"plain error", errors.New("connection reset"), KindInternal},
		{"internal wraps cause", Internal("failed to commit", sql.ErrTxDone), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", InvalidState("Bid is not pending"))

	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrExpired))
	assert.False(t, errors.Is(err, InvalidState("other message")))
}

func TestInternal_Unwrap(t *testing.T) {
	err := Internal("failed to load bid", sql.ErrConnDone)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, "failed to load bid: sql: connection is already closed", err.Error())
}

func TestFrom(t *testing.T) {
	e := From(errors.New("boom"))
	assert.Equal(t, KindInternal, e.Kind)
	assert.Equal(t, "internal error", e.Message)

	nf := NotFound("chat not found")
	assert.Same(t, nf, From(fmt.Errorf("x: %w", nf)))
}

func TestError_WithDetail(t *testing.T) {
	base := BadRequest("invalid payload")
	e := base.WithDetail("field", "latitude")

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"field": "latitude"}, e.Details)
	assert.Equal(t, "BAD_REQUEST", e.Kind.String())
}
