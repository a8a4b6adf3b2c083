package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	cacheSize       = 4096
	// cacheTTL bounds how long a deactivated user keeps working.
	cacheTTL = time.Minute
)

// Caller is the authenticated user behind a request.
type Caller struct {
	ID   string
	Role string
}

func (c *Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type cachedCaller struct {
	caller  *Caller
	validTo time.Time
}

type Service struct {
	signer   *Signer
	users    UserLookup
	tokenTTL time.Duration
	cache    *lru.Cache
	now      func() time.Time
}

func NewService(signer *Signer, users UserLookup, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	cache, _ := lru.New(cacheSize)
	return &Service{
		signer:   signer,
		users:    users,
		tokenTTL: tokenTTL,
		cache:    cache,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueToken signs a bearer token for an active user. ttl <= 0 uses the default.
func (s *Service) IssueToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.Active {
		return "", apperr.InvalidState("user is deactivated")
	}
	if ttl <= 0 {
		ttl = s.tokenTTL
	}

	now := s.now()
	return s.signer.Sign(Claims{
		UserID:    user.ID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
}

// ResolveCaller maps a bearer token to the active user it was issued for.
// Every failure to authenticate is reported as Unauthorized.
func (s *Service) ResolveCaller(ctx context.Context, token string) (*Caller, error) {
	if token == "" {
		return nil, apperr.Unauthorized("missing bearer token")
	}

	now := s.now()
	if v, ok := s.cache.Get(token); ok {
		entry := v.(cachedCaller)
		if now.Before(entry.validTo) {
			return entry.caller, nil
		}
		s.cache.Remove(token)
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		slog.Debug("Rejected bearer token", slog.Any("error", err))
		return nil, apperr.Unauthorized("invalid token")
	}

	expiresAt := time.Unix(claims.ExpiresAt, 0)
	if !now.Before(expiresAt) {
		return nil, apperr.Unauthorized("token expired")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid token")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperr.Unauthorized("user is deactivated")
	}

	caller := &Caller{ID: user.ID, Role: user.Role}
	validTo := now.Add(cacheTTL)
	if expiresAt.Before(validTo) {
		validTo = expiresAt
	}
	s.cache.Add(token, cachedCaller{caller: caller, validTo: validTo})
	return caller, nil
}
