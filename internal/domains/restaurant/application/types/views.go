package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView is the composed representation of an order: header, items with their
// applied addons, derived total and the customer currently linked to it.
type OrderView struct {
	ID            int64
	Date          time.Time
	PaymentMethod string
	Type          string
	CustomerID    *int64
	Items         []OrderItemView
	Total         decimal.Decimal
}

// OrderItemView is one order item with the addons applied to it.
type OrderItemView struct {
	ID     int64
	FoodID int64
	Price  decimal.Decimal
	Addons []ItemModView
}

// ItemModView is an addon applied to an order item.
type ItemModView struct {
	AddonID int64
	Qty     int32
	Price   decimal.Decimal
}

// FieldResults reports, per field name, whether a bulk update applied it.
type FieldResults map[string]bool

// AllSucceeded is true when every attempted field was applied.
func (r FieldResults) AllSucceeded() bool {
	for _, ok := range r {
		if !ok {
			return false
		}
	}
	return true
}
