package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

// CreateFoodInput carries the attributes of a new menu food.
type CreateFoodInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Size     *string
}

// CreateAddonInput carries the attributes of a new addon.
type CreateAddonInput struct {
	Name  string
	Type  string
	Price decimal.Decimal
	Size  *string
}

// CreateCustomerInput carries the attributes of a new customer. Address lines are optional.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address domain.Address
}

// PlaceOrderInput describes an order to create for an existing customer.
// IdempotencyKey only matters to durable placement, where it names the workflow run.
type PlaceOrderInput struct {
	CustomerID     int64
	PaymentMethod  string
	Type           string
	Items          []domain.ItemRequest
	IdempotencyKey string
}

// OrderChanges is the bulk update of an order. Nil fields and empty Items are left untouched.
type OrderChanges struct {
	PaymentMethod *string
	Type          *string
	CustomerID    *int64
	Items         []domain.ItemRequest
}

// IsEmpty reports whether nothing would change.
func (c OrderChanges) IsEmpty() bool {
	return c.PaymentMethod == nil && c.Type == nil && c.CustomerID == nil && len(c.Items) == 0
}
