package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		log     func(l *slog.Logger)
		want    []string
		notWant []string
	}{
		{
			name: "info with http type",
			log: func(l *slog.Logger) {
				l.Info("POST /api/bids/1/accept", slog.String("type", "http"), slog.Int("status", 200), slog.String("ip", "10.0.0.1"))
			},
			want:    []string{"[SellFast]", "[INFO]", "[HTTP]", "[Status: 200]", "ip=10.0.0.1"},
			notWant: []string{"type="},
		},
		{
			name: "error carries details and location",
			log: func(l *slog.Logger) {
				l.Error("Failed to accept bid", slog.String("type", "error"), slog.Any("error", errors.New("boom")), slog.String("error_location", "bids.go:10"))
			},
			want: []string{"[ERROR]", "[ERR]", "Failed to accept bid (bids.go:10): boom"},
		},
		{
			name: "default type is system",
			log: func(l *slog.Logger) {
				l.Warn("Kafka disabled")
			},
			want: []string{"[WARN]", "[SYS]", "Kafka disabled"},
		},
		{
			name: "attrs and groups",
			log: func(l *slog.Logger) {
				l.With(slog.String("component", "ledger")).WithGroup("tx").Info("Credit applied", slog.Int64("amount", 20))
			},
			want: []string{"component=ledger", "tx.amount=20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewHandler(Options{Level: slog.LevelDebug, Output: &buf, NoColor: true}))
			tt.log(l)

			got := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output %q does not contain %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output %q unexpectedly contains %q", got, w)
				}
			}
		})
	}
}

func TestCustomHandler_SkipsProbesAndLevels(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(Options{Level: slog.LevelInfo, Output: &buf, NoColor: true}))

	l.Info("GET /health", slog.String("type", "http"))
	l.Debug("Query executed", slog.String("type", "db"))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
