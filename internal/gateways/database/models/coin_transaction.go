package models

import (
	"time"

	"github.com/uptrace/bun"
)

type CoinTransactionKind string

const (
	CoinRecharge  CoinTransactionKind = "RECHARGE"
	CoinBidDebit  CoinTransactionKind = "BID_DEBIT"
	CoinBidRefund CoinTransactionKind = "BID_REFUND"
)

// CoinTransaction is an immutable audit row written together with the balance change it describes.
type CoinTransaction struct {
	bun.BaseModel `bun:"table:coin_transactions,alias:ct"`

	ID           string              `bun:"id,pk,type:uuid" json:"id"`
	UserID       string              `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Amount       int64               `bun:"amount,notnull" json:"amount"`
	Kind         CoinTransactionKind `bun:"kind,notnull" json:"kind"`
	Description  string              `bun:"description,notnull" json:"description"`
	BalanceAfter int64               `bun:"balance_after,notnull" json:"balance_after"`
	BidID        *string             `bun:"bid_id,type:uuid" json:"bid_id,omitempty"`
	CreatedAt    time.Time           `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
