package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restaurantmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/memory"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

type ledger struct {
	ctx    context.Context
	gw     *restaurantmemory.Gateway
	manage *Manager
	view   *Viewer
}

func newLedger() ledger {
	gw := restaurantmemory.NewGateway()
	return ledger{
		ctx:    context.Background(),
		gw:     gw,
		manage: NewManager(gw, domain.NewSizePolicy(domain.DefaultSizeRequiredCategories...)),
		view:   NewViewer(gw),
	}
}

// bareOrder stores an order header with no items and no customer link.
func (l ledger) bareOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := l.manage.CreateOrder(l.ctx, domain.Order{PaymentMethod: "card", Type: "pickup"})
	require.NoError(t, err)
	return order
}

func TestEmptyCollectionsAreNotFound(t *testing.T) {
	l := newLedger()
	order := l.bareOrder(t)
	customer, err := l.manage.CreateCustomer(l.ctx, domain.Customer{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	food, err := l.manage.CreateFood(l.ctx, domain.Food{Name: "Salad", Category: "side", Price: dec("8.00")})
	require.NoError(t, err)
	item, err := l.manage.AddOrderItem(l.ctx, l.bareOrder(t).ID, food)
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
	}{
		{"view order items", func() error { _, err := l.view.OrderItems(l.ctx, order.ID); return err }},
		{"view item mods", func() error { _, err := l.view.ItemMods(l.ctx, item.ID); return err }},
		{"view customer orders", func() error { _, err := l.view.CustomerOrders(l.ctx, customer.ID); return err }},
		{"view order customer", func() error { _, err := l.view.OrderCustomer(l.ctx, order.ID); return err }},
		{"delete order items", func() error { return l.manage.DeleteOrderItems(l.ctx, order.ID) }},
		{"delete item mods", func() error { return l.manage.DeleteItemMods(l.ctx, item.ID) }},
		{"delete order links", func() error { return l.manage.DeleteOrderLinks(l.ctx, order.ID) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), apperrors.ErrEntityNotFound)
		})
	}
}

func TestViewerOrderGrandTotal_EmptyOrderIsZero(t *testing.T) {
	l := newLedger()
	order := l.bareOrder(t)

	total, err := l.view.OrderGrandTotal(l.ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = l.view.OrderGrandTotal(l.ctx, order.ID+100)
	require.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestManagerDeleteAllFor_RemovesChildren(t *testing.T) {
	l := newLedger()
	order := l.bareOrder(t)
	customer, err := l.manage.CreateCustomer(l.ctx, domain.Customer{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	require.NoError(t, l.manage.LinkCustomer(l.ctx, customer.ID, order.ID))
	food, err := l.manage.CreateFood(l.ctx, domain.Food{Name: "Salad", Category: "side", Price: dec("8.00")})
	require.NoError(t, err)
	addon, err := l.manage.CreateAddon(l.ctx, domain.Addon{Name: "Croutons", Type: "topping", Price: dec("0.75")})
	require.NoError(t, err)
	item, err := l.manage.AddOrderItem(l.ctx, order.ID, food)
	require.NoError(t, err)
	_, err = l.manage.AddItemMod(l.ctx, item.ID, addon)
	require.NoError(t, err)

	linked, err := l.view.OrderCustomer(l.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, linked)

	require.NoError(t, l.manage.DeleteItemMods(l.ctx, item.ID))
	require.NoError(t, l.manage.DeleteOrderItems(l.ctx, order.ID))
	require.NoError(t, l.manage.DeleteOrderLinks(l.ctx, order.ID))

	_, err = l.view.OrderItems(l.ctx, order.ID)
	require.ErrorIs(t, err, apperrors.ErrEntityNotFound)
	_, err = l.view.CustomerOrders(l.ctx, customer.ID)
	require.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestUpdateOrderCustomer_UnlinkedOrderStaysUnlinked(t *testing.T) {
	l := newLedger()
	svc := NewService(l.gw)
	order := l.bareOrder(t)
	customer, err := l.manage.CreateCustomer(l.ctx, domain.Customer{Name: "Grace", Phone: "555-0199"})
	require.NoError(t, err)

	ok, err := svc.UpdateOrderCustomer(l.ctx, order.ID, customer.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	found, ok, err := svc.FindOrder(l.ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, found.CustomerID)
	_, err = l.view.CustomerOrders(l.ctx, customer.ID)
	require.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}
