package events

import (
	"context"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
)

const EventTypeCheckout = "store.checkout"

// CheckoutEvent is published every time a session checks out
type CheckoutEvent struct {
	SessionID   string        `json:"session_id"`
	Items       []domain.Item `json:"items"`
	Total       int           `json:"total"`
	CompletedAt time.Time     `json:"completed_at"`
}

type Publisher interface {
	PublishCheckout(ctx context.Context, event CheckoutEvent) error
	Close() error
}

// Noop drops every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) PublishCheckout(context.Context, CheckoutEvent) error { return nil }

func (Noop) Close() error { return nil }
