package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

var (
	// ErrNotFound is returned by lookups for a missing primary key.
	ErrNotFound = errors.New("record not found")
	// ErrForeignKeyViolation is returned when a delete or insert breaks a reference.
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrDuplicateKey is returned when an insert repeats an existing composite key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// FoodStore persists menu foods. Update writes every column of the record and
// returns the number of affected rows.
type FoodStore interface {
	InsertFood(ctx context.Context, food *domain.Food) (*domain.Food, error)
	GetFood(ctx context.Context, id int64) (*domain.Food, error)
	UpdateFood(ctx context.Context, food *domain.Food) (int64, error)
	DeleteFood(ctx context.Context, id int64) (int64, error)
}

// AddonStore persists menu addons.
type AddonStore interface {
	InsertAddon(ctx context.Context, addon *domain.Addon) (*domain.Addon, error)
	GetAddon(ctx context.Context, id int64) (*domain.Addon, error)
	UpdateAddon(ctx context.Context, addon *domain.Addon) (int64, error)
	DeleteAddon(ctx context.Context, id int64) (int64, error)
}

// CustomerStore persists customers.
type CustomerStore interface {
	InsertCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (int64, error)
	DeleteCustomer(ctx context.Context, id int64) (int64, error)
}

// OrderStore persists order headers, their items and item mods.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) (int64, error)
	DeleteOrder(ctx context.Context, id int64) (int64, error)

	InsertOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	GetOrderItem(ctx context.Context, id int64) (*domain.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	DeleteOrderItem(ctx context.Context, id int64) (int64, error)

	InsertItemMod(ctx context.Context, mod domain.ItemMod) error
	ListItemMods(ctx context.Context, orderItemID int64) ([]domain.ItemMod, error)
	DeleteItemMod(ctx context.Context, orderItemID, addonID int64) (int64, error)
}

// CustomerOrderStore persists the customer/order association.
type CustomerOrderStore interface {
	InsertCustomerOrder(ctx context.Context, link domain.CustomerOrder) error
	ListOrdersOfCustomer(ctx context.Context, customerID int64) ([]domain.CustomerOrder, error)
	ListCustomersOfOrder(ctx context.Context, orderID int64) ([]domain.CustomerOrder, error)
	DeleteCustomerOrder(ctx context.Context, link domain.CustomerOrder) (int64, error)
}

// Gateway is the persistence boundary of the restaurant. InTx runs fn inside one
// unit of work: every write made through tx is committed when fn returns nil and
// rolled back otherwise. Calling InTx on a tx gateway joins the outer unit of work.
// View runs read-only fn against one consistent state; fn must not write.
type Gateway interface {
	FoodStore
	AddonStore
	CustomerStore
	OrderStore
	CustomerOrderStore
	InTx(ctx context.Context, fn func(tx Gateway) error) error
	View(ctx context.Context, fn func(tx Gateway) error) error
}
