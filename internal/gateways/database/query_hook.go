package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// QueryHook logs every bun query with type=db. Queries slower than
// SlowThreshold are raised to warn.
type QueryHook struct {
	SlowThreshold time.Duration
}

var _ bun.QueryHook = QueryHook{}

func (h QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	took := time.Since(event.StartTime)
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", event.Operation()),
		slog.String("query", event.Query),
		slog.Duration("took", took),
	}

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		slog.ErrorContext(ctx, "Query failed", append(attrs, slog.Any("error", event.Err))...)
	case h.SlowThreshold > 0 && took > h.SlowThreshold:
		slog.WarnContext(ctx, "Slow query", attrs...)
	default:
		slog.DebugContext(ctx, "Query executed", attrs...)
	}
}
