// Package events publishes marketplace domain events after their transaction
// commits. Delivery is best effort: publishing never fails the operation.
package events

import (
	"context"
	"time"
)

type Type string

const (
	BidPlaced     Type = "bid.placed"
	BidExpired    Type = "bid.expired"
	DealCreated   Type = "deal.created"
	DealCompleted Type = "deal.completed"
	ChatBlocked   Type = "chat.blocked"
)

type Event struct {
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func New(t Type, key string, payload any) Event {
	return Event{Type: t, Key: key, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
