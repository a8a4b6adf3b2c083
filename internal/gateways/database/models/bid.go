package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BidStatus string

const (
	BidPending  BidStatus = "PENDING"
	BidAccepted BidStatus = "ACCEPTED"
	BidRejected BidStatus = "REJECTED"
	BidExpired  BidStatus = "EXPIRED"
)

type Bid struct {
	bun.BaseModel `bun:"table:bids,alias:b"`

	ID         string     `bun:"id,pk,type:uuid" json:"id"`
	ListingID  string     `bun:"listing_id,notnull,type:uuid" json:"listing_id"`
	BidderID   string     `bun:"bidder_id,notnull,type:uuid" json:"bidder_id"`
	Amount     int64      `bun:"amount,notnull" json:"amount"`
	CoinsUsed  int64      `bun:"coins_used,notnull,default:0" json:"coins_used"`
	Status     BidStatus  `bun:"status,notnull" json:"status"`
	ExpiresAt  *time.Time `bun:"expires_at" json:"expires_at,omitempty"`
	AcceptedAt *time.Time `bun:"accepted_at" json:"accepted_at,omitempty"`
	RejectedAt *time.Time `bun:"rejected_at" json:"rejected_at,omitempty"`
	ExpiredAt  *time.Time `bun:"expired_at" json:"expired_at,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Listing *Listing `bun:"rel:belongs-to,join:listing_id=id" json:"-"`
}

// IsExpired reports whether the offer window closed before now.
// Bids without a deadline never expire.
func (b *Bid) IsExpired(now time.Time) bool {
	return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}
