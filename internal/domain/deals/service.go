package deals

import (
	"context"
	"log/slog"
	"time"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/events"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetDeal returns the deal to its buyer or seller. Anyone else gets NotFound.
func (s *Service) GetDeal(ctx context.Context, dealID, callerID string) (*models.Deal, error) {
	deal, err := s.repo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.HasParticipant(callerID) {
		return nil, apperr.NotFound("deal not found")
	}
	return deal, nil
}

// CompleteDeal records the outcome of a deal. Either party may call it, and
// calling it again overwrites the outcome and completion time.
func (s *Service) CompleteDeal(ctx context.Context, dealID, callerID string, isSuccess *bool) (*models.Deal, error) {
	deal, err := s.repo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.HasParticipant(callerID) {
		return nil, apperr.Forbidden("only the buyer or seller can complete this deal")
	}
	if isSuccess == nil {
		return nil, apperr.BadRequest("is_success must be a boolean")
	}

	completed, err := s.repo.Complete(ctx, dealID, *isSuccess, s.now().UTC())
	if err != nil {
		return nil, err
	}

	slog.Info("Deal completed",
		slog.String("deal_id", completed.ID),
		slog.String("by", callerID),
		slog.Bool("success", *isSuccess))
	events.PublishLogged(ctx, s.publisher, events.New(events.DealCompleted, completed.ListingID, completed))
	return completed, nil
}
