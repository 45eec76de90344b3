package service

import (
	"context"
	"time"
)

const (
	EventItemAdded       = "item_added"
	EventQuantityUpdated = "quantity_updated"
	EventItemRemoved     = "item_removed"
	EventCartCleared     = "cart_cleared"
)

// Event describes a successful cart mutation for downstream consumers
// (sales analytics, mostly).
type Event struct {
	Type       string    `json:"type"`
	CartKey    string    `json:"cart_key"`
	ProductID  int64     `json:"product_id,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	TotalPrice int64     `json:"total_price"`
	At         time.Time `json:"at"`
}

// Publisher emits mutation events. Implementations must not block the
// mutation path; delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}
