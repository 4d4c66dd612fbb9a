package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// Viewer answers read-only queries. Every lookup fails with EntityNotFound rather
// than returning an empty result.
type Viewer struct {
	gw ports.Gateway
}

func NewViewer(gw ports.Gateway) *Viewer {
	return &Viewer{gw: gw}
}

func (v *Viewer) Food(ctx context.Context, id int64) (*domain.Food, error) {
	food, err := v.gw.GetFood(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Food", id)
	}
	return food, nil
}

func (v *Viewer) Addon(ctx context.Context, id int64) (*domain.Addon, error) {
	addon, err := v.gw.GetAddon(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Addon", id)
	}
	return addon, nil
}

func (v *Viewer) Customer(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := v.gw.GetCustomer(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Customer", id)
	}
	return customer, nil
}

func (v *Viewer) Order(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := v.gw.GetOrder(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order", id)
	}
	return order, nil
}

func (v *Viewer) OrderItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	item, err := v.gw.GetOrderItem(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order item", id)
	}
	return item, nil
}

// OrderItems lists the items of an order, failing with EntityNotFound when there are none.
func (v *Viewer) OrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	items, err := v.gw.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if len(items) == 0 {
		return nil, apperrors.ErrEntityNotFound.WithMessagef("Order %d has no items", orderID)
	}
	return items, nil
}

// ItemMods lists the addons applied to an order item, failing with EntityNotFound when there are none.
func (v *Viewer) ItemMods(ctx context.Context, orderItemID int64) ([]domain.ItemMod, error) {
	mods, err := v.gw.ListItemMods(ctx, orderItemID)
	if err != nil {
		return nil, mapError(err)
	}
	if len(mods) == 0 {
		return nil, apperrors.ErrEntityNotFound.WithMessagef("Order item %d has no addons", orderItemID)
	}
	return mods, nil
}

// CustomerOrders lists the orders linked to a customer, failing with EntityNotFound when there are none.
func (v *Viewer) CustomerOrders(ctx context.Context, customerID int64) ([]domain.CustomerOrder, error) {
	links, err := v.gw.ListOrdersOfCustomer(ctx, customerID)
	if err != nil {
		return nil, mapError(err)
	}
	if len(links) == 0 {
		return nil, apperrors.ErrEntityNotFound.WithMessagef("Customer %d has no orders", customerID)
	}
	return links, nil
}

// OrderCustomer returns the id of the customer linked to an order.
func (v *Viewer) OrderCustomer(ctx context.Context, orderID int64) (int64, error) {
	links, err := v.gw.ListCustomersOfOrder(ctx, orderID)
	if err != nil {
		return 0, mapError(err)
	}
	if len(links) == 0 {
		return 0, apperrors.ErrEntityNotFound.WithMessagef("Order %d is not linked to a customer", orderID)
	}
	return links[0].CustomerID, nil
}

// OrderGrandTotal sums the snapshot price of every item of an order and of every
// addon applied to those items. An order without items totals zero.
func (v *Viewer) OrderGrandTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	if _, err := v.Order(ctx, orderID); err != nil {
		return decimal.Zero, err
	}
	items, err := v.OrderItems(ctx, orderID)
	if isNotFound(err) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
		mods, err := v.gw.ListItemMods(ctx, item.ID)
		if err != nil {
			return decimal.Zero, mapError(err)
		}
		for _, mod := range mods {
			total = total.Add(mod.Price)
		}
	}
	return total, nil
}

func lookupError(err error, entity string, id int64) error {
	if isNotFound(mapError(err)) {
		return notFound(entity, id)
	}
	return mapError(err)
}
