package chats

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/events"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

// MessageInput is either a text message or a location. Never both.
type MessageInput struct {
	Text       *string  `json:"text"`
	IsLocation bool     `json:"is_location"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (in MessageInput) validate() error {
	if in.IsLocation {
		if in.Text != nil {
			return apperr.BadRequest("a message is either text or a location")
		}
		if in.Latitude == nil || in.Longitude == nil {
			return apperr.BadRequest("latitude and longitude are required for a location")
		}
		if *in.Latitude < -90 || *in.Latitude > 90 {
			return apperr.BadRequest("latitude must be between -90 and 90")
		}
		if *in.Longitude < -180 || *in.Longitude > 180 {
			return apperr.BadRequest("longitude must be between -180 and 180")
		}
		return nil
	}

	if in.Latitude != nil || in.Longitude != nil {
		return apperr.BadRequest("a message is either text or a location")
	}
	if in.Text == nil || strings.TrimSpace(*in.Text) == "" {
		return apperr.BadRequest("text is required")
	}
	return nil
}

type PostResult struct {
	Message     *models.ChatMessage `json:"message"`
	ChatBlocked bool                `json:"chat_blocked"`
}

var errChatNotFound = apperr.NotFound("chat not found")

type Service struct {
	repo      Repository
	uow       UnitOfWork
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, uow UnitOfWork, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, uow: uow, publisher: publisher, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PostMessage appends a message to the chat. A text containing a phone number
// is stored flagged and blocks the chat for good. A missing chat, a sender
// outside the chat and a blocked chat all fail the same way.
func (s *Service) PostMessage(ctx context.Context, chatID, senderID string, in MessageInput) (*PostResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var result *PostResult
	err := s.uow.Do(ctx, func(ctx context.Context, tx Tx) error {
		chat, err := tx.LockChat(ctx, chatID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return errChatNotFound
			}
			return err
		}
		if !chat.HasParticipant(senderID) || chat.Blocked {
			return errChatNotFound
		}

		msg := &models.ChatMessage{
			ID:         uuid.NewString(),
			ChatID:     chat.ID,
			SenderID:   senderID,
			IsLocation: in.IsLocation,
			CreatedAt:  now,
		}
		if in.IsLocation {
			msg.Latitude = in.Latitude
			msg.Longitude = in.Longitude
		} else {
			text := strings.TrimSpace(*in.Text)
			msg.Text = &text
			if ContainsPhoneNumber(text) {
				msg.IsBlocked = true
				msg.BlockReason = MessageBlockReason
			}
		}

		if err := tx.InsertMessage(ctx, msg); err != nil {
			return err
		}

		if msg.IsBlocked {
			err = tx.BlockChat(ctx, chat.ID, ChatBlockReason, now)
		} else {
			err = tx.TouchChat(ctx, chat.ID, now)
		}
		if err != nil {
			return err
		}

		result = &PostResult{Message: msg, ChatBlocked: msg.IsBlocked}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.ChatBlocked {
		slog.Warn("Chat blocked by moderation",
			slog.String("chat_id", chatID),
			slog.String("sender_id", senderID))
		events.PublishLogged(ctx, s.publisher, events.New(events.ChatBlocked, chatID, result.Message))
	}
	return result, nil
}

// ListMessages returns the chat history to its participants, blocked or not.
func (s *Service) ListMessages(ctx context.Context, chatID, callerID string) ([]*models.ChatMessage, error) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, errChatNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(callerID) {
		return nil, errChatNotFound
	}
	return s.repo.ListMessages(ctx, chatID)
}

func (s *Service) ListChats(ctx context.Context, callerID string) ([]*models.Chat, error) {
	return s.repo.ListForUser(ctx, callerID)
}
