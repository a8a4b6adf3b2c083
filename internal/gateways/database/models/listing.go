package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ListingStatus string

const (
	ListingDraft    ListingStatus = "DRAFT"
	ListingActive   ListingStatus = "ACTIVE"
	ListingSold     ListingStatus = "SOLD"
	ListingArchived ListingStatus = "ARCHIVED"
)

type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID          string        `bun:"id,pk,type:uuid" json:"id"`
	SellerID    string        `bun:"seller_id,notnull,type:uuid" json:"seller_id"`
	ItemID      string        `bun:"item_id,notnull,type:uuid" json:"item_id"`
	CompanyID   string        `bun:"company_id,notnull,type:uuid" json:"company_id"`
	Title       string        `bun:"title,notnull" json:"title"`
	Description string        `bun:"description" json:"description"`
	Price       int64         `bun:"price,notnull" json:"price"`
	Status      ListingStatus `bun:"status,notnull" json:"status"`
	Images      []string      `bun:"images,array" json:"images"`
	CreatedAt   time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Specifications []*ListingSpecification `bun:"rel:has-many,join:id=listing_id" json:"specifications,omitempty"`
}

// ListingSpecification is one name/value pair shown on a listing, e.g. "RAM" = "8 GB".
type ListingSpecification struct {
	bun.BaseModel `bun:"table:listing_specifications,alias:ls"`

	ID        string `bun:"id,pk,type:uuid" json:"id"`
	ListingID string `bun:"listing_id,notnull,type:uuid" json:"listing_id"`
	Name      string `bun:"name,notnull" json:"name"`
	Value     string `bun:"value,notnull" json:"value"`
	Position  int    `bun:"position,notnull" json:"position"`
}
