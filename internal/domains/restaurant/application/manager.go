package application

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// Manager performs single-entity writes with existence checks and the size rule.
// It returns typed failures instead of empty results.
type Manager struct {
	gw    ports.Gateway
	sizes domain.SizePolicy
	now   func() time.Time
}

// NewManager binds a manager to a gateway, usually the one handed out by InTx.
func NewManager(gw ports.Gateway, sizes domain.SizePolicy) *Manager {
	return &Manager{gw: gw, sizes: sizes, now: time.Now}
}

var errNoAttributes = apperrors.ErrImproperEntryData.WithMessage("At least one attribute must be supplied for an update")

func (m *Manager) CreateFood(ctx context.Context, food domain.Food) (*domain.Food, error) {
	food.ID = 0
	if err := food.Validate(m.sizes); err != nil {
		return nil, mapError(err)
	}
	saved, err := m.gw.InsertFood(ctx, &food)
	return saved, mapError(err)
}

func (m *Manager) CreateAddon(ctx context.Context, addon domain.Addon) (*domain.Addon, error) {
	addon.ID = 0
	if err := addon.Validate(m.sizes); err != nil {
		return nil, mapError(err)
	}
	saved, err := m.gw.InsertAddon(ctx, &addon)
	return saved, mapError(err)
}

func (m *Manager) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customer.ID = 0
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := m.gw.InsertCustomer(ctx, &customer)
	return saved, mapError(err)
}

// CreateOrder stores an order header dated now.
func (m *Manager) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	order.ID = 0
	order.Date = m.now().UTC()
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := m.gw.InsertOrder(ctx, &order)
	return saved, mapError(err)
}

// LinkCustomer associates an order with a customer.
func (m *Manager) LinkCustomer(ctx context.Context, customerID, orderID int64) error {
	return mapError(m.gw.InsertCustomerOrder(ctx, domain.CustomerOrder{CustomerID: customerID, OrderID: orderID}))
}

// AddOrderItem adds food to an order, copying the food's current price.
func (m *Manager) AddOrderItem(ctx context.Context, orderID int64, food *domain.Food) (*domain.OrderItem, error) {
	item, err := m.gw.InsertOrderItem(ctx, &domain.OrderItem{OrderID: orderID, FoodID: food.ID, Price: food.Price})
	return item, mapError(err)
}

// AddItemMod applies an addon to an order item, copying the addon's current price.
func (m *Manager) AddItemMod(ctx context.Context, orderItemID int64, addon *domain.Addon) (*domain.ItemMod, error) {
	mod := domain.ItemMod{OrderItemID: orderItemID, AddonID: addon.ID, Qty: 1, Price: addon.Price}
	if err := m.gw.InsertItemMod(ctx, mod); err != nil {
		return nil, mapError(err)
	}
	return &mod, nil
}

func (m *Manager) UpdateFood(ctx context.Context, id int64, patch domain.FoodPatch) (*domain.Food, error) {
	food, err := m.gw.GetFood(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Food", id)
	}
	if patch.IsEmpty() {
		return nil, errNoAttributes
	}
	food.Apply(patch)
	if err := food.Validate(m.sizes); err != nil {
		return nil, mapError(err)
	}
	if err := m.affected(m.gw.UpdateFood(ctx, food))("Food", id); err != nil {
		return nil, err
	}
	return food, nil
}

func (m *Manager) UpdateAddon(ctx context.Context, id int64, patch domain.AddonPatch) (*domain.Addon, error) {
	addon, err := m.gw.GetAddon(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Addon", id)
	}
	if patch.IsEmpty() {
		return nil, errNoAttributes
	}
	addon.Apply(patch)
	if err := addon.Validate(m.sizes); err != nil {
		return nil, mapError(err)
	}
	if err := m.affected(m.gw.UpdateAddon(ctx, addon))("Addon", id); err != nil {
		return nil, err
	}
	return addon, nil
}

func (m *Manager) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	customer, err := m.gw.GetCustomer(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Customer", id)
	}
	if patch.IsEmpty() {
		return nil, errNoAttributes
	}
	customer.Apply(patch)
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := m.affected(m.gw.UpdateCustomer(ctx, customer))("Customer", id); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateOrder changes the order header. The order date never changes.
func (m *Manager) UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (*domain.Order, error) {
	order, err := m.gw.GetOrder(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order", id)
	}
	if patch.IsEmpty() {
		return nil, errNoAttributes
	}
	order.Apply(patch)
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := m.affected(m.gw.UpdateOrder(ctx, order))("Order", id); err != nil {
		return nil, err
	}
	return order, nil
}

func (m *Manager) DeleteFood(ctx context.Context, id int64) error {
	return m.affected(m.gw.DeleteFood(ctx, id))("Food", id)
}

func (m *Manager) DeleteAddon(ctx context.Context, id int64) error {
	return m.affected(m.gw.DeleteAddon(ctx, id))("Addon", id)
}

func (m *Manager) DeleteCustomer(ctx context.Context, id int64) error {
	return m.affected(m.gw.DeleteCustomer(ctx, id))("Customer", id)
}

func (m *Manager) DeleteOrder(ctx context.Context, id int64) error {
	return m.affected(m.gw.DeleteOrder(ctx, id))("Order", id)
}

func (m *Manager) DeleteOrderItem(ctx context.Context, id int64) error {
	return m.affected(m.gw.DeleteOrderItem(ctx, id))("Order item", id)
}

func (m *Manager) DeleteItemMod(ctx context.Context, orderItemID, addonID int64) error {
	rows, err := m.gw.DeleteItemMod(ctx, orderItemID, addonID)
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return apperrors.ErrEntityNotFound.WithMessagef("Addon %d is not applied to order item %d", addonID, orderItemID)
	}
	return nil
}

func (m *Manager) DeleteCustomerOrder(ctx context.Context, link domain.CustomerOrder) error {
	rows, err := m.gw.DeleteCustomerOrder(ctx, link)
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return apperrors.ErrEntityNotFound.WithMessagef("Order %d is not linked to customer %d", link.OrderID, link.CustomerID)
	}
	return nil
}

// DeleteOrderItems removes every item of an order. It fails with EntityNotFound when
// the order has no items. Item mods must already be gone.
func (m *Manager) DeleteOrderItems(ctx context.Context, orderID int64) error {
	items, err := m.gw.ListOrderItems(ctx, orderID)
	if err != nil {
		return mapError(err)
	}
	if len(items) == 0 {
		return apperrors.ErrEntityNotFound.WithMessagef("Order %d has no items", orderID)
	}
	for _, item := range items {
		if err := m.DeleteOrderItem(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteItemMods removes every addon applied to an order item, failing with
// EntityNotFound when there are none.
func (m *Manager) DeleteItemMods(ctx context.Context, orderItemID int64) error {
	mods, err := m.gw.ListItemMods(ctx, orderItemID)
	if err != nil {
		return mapError(err)
	}
	if len(mods) == 0 {
		return apperrors.ErrEntityNotFound.WithMessagef("Order item %d has no addons", orderItemID)
	}
	for _, mod := range mods {
		if err := m.DeleteItemMod(ctx, mod.OrderItemID, mod.AddonID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteOrderLinks removes the customer links of an order, failing with EntityNotFound
// when the order is not linked.
func (m *Manager) DeleteOrderLinks(ctx context.Context, orderID int64) error {
	links, err := m.gw.ListCustomersOfOrder(ctx, orderID)
	if err != nil {
		return mapError(err)
	}
	if len(links) == 0 {
		return apperrors.ErrEntityNotFound.WithMessagef("Order %d is not linked to a customer", orderID)
	}
	for _, link := range links {
		if err := m.DeleteCustomerOrder(ctx, link); err != nil {
			return err
		}
	}
	return nil
}

// affected converts a row count into EntityNotFound when nothing was touched.
func (m *Manager) affected(rows int64, err error) func(entity string, id int64) error {
	return func(entity string, id int64) error {
		if err != nil {
			return lookupError(err, entity, id)
		}
		if rows == 0 {
			return notFound(entity, id)
		}
		return nil
	}
}
