package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyPaymentMethod = errors.New("payment method is required")
	ErrEmptyOrderType     = errors.New("order type is required")
	ErrNoOrderItems       = errors.New("at least one order item is required")
	ErrDuplicateAddon     = errors.New("an addon may be applied to an order item only once")
)

// Order is the header of a customer order. Its total is always derived from items and mods.
type Order struct {
	ID            int64
	Date          time.Time
	PaymentMethod string
	Type          string
}

// OrderPatch carries the order fields a caller wants to change. Date is immutable.
type OrderPatch struct {
	PaymentMethod *string
	Type          *string
}

func (p OrderPatch) IsEmpty() bool {
	return p.PaymentMethod == nil && p.Type == nil
}

func (o *Order) Apply(p OrderPatch) {
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.Type != nil {
		o.Type = *p.Type
	}
}

func (o Order) Validate() error {
	if strings.TrimSpace(o.PaymentMethod) == "" {
		return ErrEmptyPaymentMethod
	}
	if strings.TrimSpace(o.Type) == "" {
		return ErrEmptyOrderType
	}
	return nil
}

// CustomerOrder links an order to the customer who placed it.
type CustomerOrder struct {
	CustomerID int64
	OrderID    int64
}

// OrderItem is one food on an order. Price is copied from the food when the item is added.
type OrderItem struct {
	ID      int64
	OrderID int64
	FoodID  int64
	Price   decimal.Decimal
}

// ItemMod records an addon applied to an order item. Price is copied from the addon.
type ItemMod struct {
	OrderItemID int64
	AddonID     int64
	Qty         int32
	Price       decimal.Decimal
}

// ItemRequest asks for one food with the given addons applied to it.
type ItemRequest struct {
	FoodID   int64
	AddonIDs []int64
}

// ValidateItemRequests rejects empty lists and addons repeated on the same item.
func ValidateItemRequests(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrNoOrderItems
	}
	for _, item := range items {
		seen := make(map[int64]struct{}, len(item.AddonIDs))
		for _, id := range item.AddonIDs {
			if _, dup := seen[id]; dup {
				return ErrDuplicateAddon
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
