package chats

import (
	"context"
	"time"

	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type Tx interface {
	// LockChat reads the chat with a row lock held until commit.
	LockChat(ctx context.Context, id string) (*models.Chat, error)
	InsertMessage(ctx context.Context, msg *models.ChatMessage) error
	// TouchChat stamps updated_at.
	TouchChat(ctx context.Context, id string, at time.Time) error
	// BlockChat latches blocked with reason and stamps updated_at.
	BlockChat(ctx context.Context, id, reason string, at time.Time) error
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(context.Context, Tx) error) error
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	// ListMessages returns the chat's messages oldest first.
	ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error)
	// ListForUser returns chats where userID is buyer or seller, most recently active first.
	ListForUser(ctx context.Context, userID string) ([]*models.Chat, error)
}
