package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is implemented by everything the restaurant publishes after a commit.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised once an order and all of its items are stored.
type OrderPlaced struct {
	BaseEvent
	OrderID    int64
	CustomerID int64
	ItemCount  int
	Total      decimal.Decimal
}

func (e OrderPlaced) EventName() string { return "order.placed" }

// OrderDeleted is raised when an order and its items are removed.
type OrderDeleted struct {
	BaseEvent
	OrderID int64
}

func (e OrderDeleted) EventName() string { return "order.deleted" }

// CustomerDeleted is raised when a customer is removed. OrderIDs lists orders removed with them.
type CustomerDeleted struct {
	BaseEvent
	CustomerID int64
	OrderIDs   []int64
}

func (e CustomerDeleted) EventName() string { return "customer.deleted" }
