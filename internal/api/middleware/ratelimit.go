package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sellfast/marketplace/internal/api/response"
)

// Store counts requests per key within a window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// MemoryStore is a sliding window limiter local to one process.
type MemoryStore struct {
	requests map[string][]time.Time
	mutex    sync.Mutex
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	valid := prune(s.requests[key], now.Add(-window))

	if len(valid) >= limit {
		s.requests[key] = valid
		return false, nil
	}

	s.requests[key] = append(valid, now)
	return true, nil
}

// Run drops idle keys every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval, window time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mutex.Lock()
			cutoff := s.now().Add(-window)
			for key, requests := range s.requests {
				if valid := prune(requests, cutoff); len(valid) == 0 {
					delete(s.requests, key)
				} else {
					s.requests[key] = valid
				}
			}
			s.mutex.Unlock()
		}
	}
}

func prune(requests []time.Time, cutoff time.Time) []time.Time {
	var valid []time.Time
	for _, req := range requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}
	return valid
}

// RateLimit limits requests per client IP. If the store fails the request is let through.
func RateLimit(store Store, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		allowed, err := store.Allow(c.UserContext(), ip, limit, window)
		if err != nil {
			slog.Warn("Rate limit store unavailable", slog.Any("error", err))
			return c.Next()
		}
		if !allowed {
			slog.Warn("Rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.Int("limit", limit),
				slog.Duration("window", window))

			return response.SendError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.", nil)
		}

		return c.Next()
	}
}
