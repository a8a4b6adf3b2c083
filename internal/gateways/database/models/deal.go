package models

import (
	"time"

	"github.com/uptrace/bun"
)

type DealStatus string

const (
	DealInProgress DealStatus = "IN_PROGRESS"
	DealCompleted  DealStatus = "COMPLETED"
)

type Deal struct {
	bun.BaseModel `bun:"table:deals,alias:d"`

	ID          string     `bun:"id,pk,type:uuid" json:"id"`
	ListingID   string     `bun:"listing_id,notnull,type:uuid" json:"listing_id"`
	BidID       string     `bun:"bid_id,notnull,unique,type:uuid" json:"bid_id"`
	SellerID    string     `bun:"seller_id,notnull,type:uuid" json:"seller_id"`
	BuyerID     string     `bun:"buyer_id,notnull,type:uuid" json:"buyer_id"`
	Amount      int64      `bun:"amount,notnull" json:"amount"`
	Status      DealStatus `bun:"status,notnull" json:"status"`
	IsSuccess   *bool      `bun:"is_success" json:"is_success,omitempty"`
	CompletedAt *time.Time `bun:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (d *Deal) HasParticipant(userID string) bool {
	return userID != "" && (d.BuyerID == userID || d.SellerID == userID)
}
