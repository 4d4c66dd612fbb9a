package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

// Creator creates menu entries, customers and orders.
type Creator interface {
	// CreateFood reports ok=false, without error, when the category requires a size and none was given.
	CreateFood(ctx context.Context, input types.CreateFoodInput) (*domain.Food, bool, error)
	CreateAddon(ctx context.Context, input types.CreateAddonInput) (*domain.Addon, error)
	CreateCustomer(ctx context.Context, input types.CreateCustomerInput) (*domain.Customer, error)
	CreateOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error)
}

// Finder looks entities up. A missing entity is reported as found=false, never as an error.
type Finder interface {
	FindFood(ctx context.Context, id int64) (*domain.Food, bool, error)
	FindAddon(ctx context.Context, id int64) (*domain.Addon, bool, error)
	FindCustomer(ctx context.Context, id int64) (*domain.Customer, bool, error)
	FindOrder(ctx context.Context, id int64) (*types.OrderView, bool, error)
}

// Updater changes one attribute per call and reports false when the entity does not exist.
// The bulk methods apply each supplied field in turn and report per-field results.
type Updater interface {
	UpdateFoodName(ctx context.Context, id int64, name string) (bool, error)
	UpdateFoodPrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error)
	UpdateFoodCategory(ctx context.Context, id int64, category string) (bool, error)
	UpdateFoodSize(ctx context.Context, id int64, size string) (bool, error)
	UpdateFood(ctx context.Context, id int64, patch domain.FoodPatch) (*domain.Food, types.FieldResults, error)

	UpdateAddonName(ctx context.Context, id int64, name string) (bool, error)
	UpdateAddonPrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error)
	UpdateAddonType(ctx context.Context, id int64, addonType string) (bool, error)
	UpdateAddonSize(ctx context.Context, id int64, size string) (bool, error)
	UpdateAddon(ctx context.Context, id int64, patch domain.AddonPatch) (*domain.Addon, types.FieldResults, error)

	UpdateCustomerName(ctx context.Context, id int64, name string) (bool, error)
	UpdateCustomerPhone(ctx context.Context, id int64, phone string) (bool, error)
	UpdateCustomerAddress(ctx context.Context, id int64, address domain.AddressPatch) (bool, error)
	UpdateCustomerStreet(ctx context.Context, id int64, street string) (bool, error)
	UpdateCustomerCity(ctx context.Context, id int64, city string) (bool, error)
	UpdateCustomerProvince(ctx context.Context, id int64, province string) (bool, error)
	UpdateCustomerPostalCode(ctx context.Context, id int64, postalCode string) (bool, error)
	UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, types.FieldResults, error)

	UpdateOrderPaymentMethod(ctx context.Context, id int64, method string) (bool, error)
	UpdateOrderType(ctx context.Context, id int64, orderType string) (bool, error)
	UpdateOrderCustomer(ctx context.Context, id, customerID int64) (bool, error)
	UpdateOrderItems(ctx context.Context, id int64, items []domain.ItemRequest) (bool, error)
	UpdateOrder(ctx context.Context, id int64, changes types.OrderChanges) (*types.OrderView, types.FieldResults, error)
}

// Deleter removes entities, cascading to the records that depend on them.
type Deleter interface {
	DeleteFood(ctx context.Context, id int64) (bool, error)
	DeleteAddon(ctx context.Context, id int64) (bool, error)
	// DeleteCustomer removes the customer's orders first when cascade is set; otherwise
	// existing orders make it fail with MustDeleteOrdersFirst.
	DeleteCustomer(ctx context.Context, id int64, cascade bool) (bool, error)
	DeleteOrder(ctx context.Context, id int64) error
	// DeleteOrderItem returns the order total derived after the item was removed.
	DeleteOrderItem(ctx context.Context, orderID, itemID int64) (decimal.Decimal, bool, error)
}

// Service is the full set of restaurant use cases exposed to adapters.
type Service interface {
	Creator
	Finder
	Updater
	Deleter
}
