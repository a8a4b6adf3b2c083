package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sellfast/marketplace/internal/apperr"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
)

type ChatRepository struct {
	db bun.IDB
}

func NewChatRepository(db bun.IDB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	chat := new(models.Chat)
	err := r.db.NewSelect().
		Model(chat).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "chat")
	}
	return chat, nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := r.db.NewSelect().
		Model(&messages).
		Where("chat_id = ?", chatID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (r *ChatRepository) ListForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	var chats []*models.Chat
	err := r.db.NewSelect().
		Model(&chats).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("buyer_id = ?", userID).WhereOr("seller_id = ?", userID)
		}).
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

type chatTx struct {
	db bun.IDB
}

func (t chatTx) LockChat(ctx context.Context, id string) (*models.Chat, error) {
	chat := new(models.Chat)
	err := t.db.NewSelect().
		Model(chat).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, lookupErr(err, "chat")
	}
	return chat, nil
}

func (t chatTx) InsertMessage(ctx context.Context, msg *models.ChatMessage) error {
	if _, err := t.db.NewInsert().Model(msg).Exec(ctx); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

func (t chatTx) TouchChat(ctx context.Context, id string, at time.Time) error {
	return t.update(ctx, id, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("updated_at = ?", at)
	})
}

func (t chatTx) BlockChat(ctx context.Context, id, reason string, at time.Time) error {
	return t.update(ctx, id, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.
			Set("blocked = ?", true).
			Set("block_reason = ?", reason).
			Set("updated_at = ?", at)
	})
}

func (t chatTx) update(ctx context.Context, id string, set func(*bun.UpdateQuery) *bun.UpdateQuery) error {
	q := t.db.NewUpdate().
		Model((*models.Chat)(nil)).
		Where("id = ?", id)

	result, err := set(q).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("chat not found")
	}
	return nil
}
