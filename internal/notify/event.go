// Package notify fans order events out to external sinks after the order
// transaction has committed. Delivery is best effort: failures are logged
// and never reach the caller.
package notify

import (
	"context"
	"time"
)

type Kind string

const (
	KindOrderPlaced   Kind = "order.placed"
	KindStatusChanged Kind = "order.status_changed"
)

type Event struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"type"`
	UserID      string    `json:"user_id"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status,omitempty"`
	TotalAmount int64     `json:"total_amount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Sink delivers one event. Deliver must honor ctx cancellation.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}
