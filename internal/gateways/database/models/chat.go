package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Chat struct {
	bun.BaseModel `bun:"table:chats,alias:ch"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	DealID      string    `bun:"deal_id,notnull,unique,type:uuid" json:"deal_id"`
	ListingID   string    `bun:"listing_id,notnull,type:uuid" json:"listing_id"`
	BuyerID     string    `bun:"buyer_id,notnull,type:uuid" json:"buyer_id"`
	SellerID    string    `bun:"seller_id,notnull,type:uuid" json:"seller_id"`
	Blocked     bool      `bun:"blocked,notnull,default:false" json:"blocked"`
	BlockReason string    `bun:"block_reason" json:"block_reason,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (c *Chat) HasParticipant(userID string) bool {
	return userID != "" && (c.BuyerID == userID || c.SellerID == userID)
}

type ChatMessage struct {
	bun.BaseModel `bun:"table:chat_messages,alias:cm"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	ChatID      string    `bun:"chat_id,notnull,type:uuid" json:"chat_id"`
	SenderID    string    `bun:"sender_id,notnull,type:uuid" json:"sender_id"`
	Text        *string   `bun:"text" json:"text,omitempty"`
	IsLocation  bool      `bun:"is_location,notnull,default:false" json:"is_location"`
	Latitude    *float64  `bun:"latitude" json:"latitude,omitempty"`
	Longitude   *float64  `bun:"longitude" json:"longitude,omitempty"`
	IsBlocked   bool      `bun:"is_blocked,notnull,default:false" json:"is_blocked"`
	BlockReason string    `bun:"block_reason" json:"block_reason,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
