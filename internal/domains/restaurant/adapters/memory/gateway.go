package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

var (
	_ ports.Gateway = (*Gateway)(nil)
	_ ports.Gateway = (*txGateway)(nil)
)

// Gateway is an in-memory persistence adapter. It enforces the same references as
// the relational schema so cascades behave identically.
type Gateway struct {
	mu    sync.RWMutex
	state *state
}

func NewGateway() *Gateway {
	return &Gateway{state: newState()}
}

// InTx runs fn with exclusive access. A failing fn leaves the tables as they were.
func (g *Gateway) InTx(ctx context.Context, fn func(tx ports.Gateway) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	backup := g.state.snapshot()
	if err := fn(&txGateway{state: g.state}); err != nil {
		g.state = backup
		return err
	}
	return nil
}

// View runs fn under the shared lock without taking a snapshot, so readers do not
// block each other.
func (g *Gateway) View(ctx context.Context, fn func(tx ports.Gateway) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn(&txGateway{state: g.state})
}

// txGateway is handed to InTx callbacks; the outer lock is already held.
type txGateway struct {
	*state
}

// InTx joins the running unit of work.
func (t *txGateway) InTx(_ context.Context, fn func(tx ports.Gateway) error) error {
	return fn(t)
}

func (t *txGateway) View(_ context.Context, fn func(tx ports.Gateway) error) error {
	return fn(t)
}

func (g *Gateway) read() func() {
	g.mu.RLock()
	return g.mu.RUnlock
}

func (g *Gateway) write() func() {
	g.mu.Lock()
	return g.mu.Unlock
}

func (g *Gateway) InsertFood(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	defer g.write()()
	return g.state.InsertFood(ctx, food)
}

func (g *Gateway) GetFood(ctx context.Context, id int64) (*domain.Food, error) {
	defer g.read()()
	return g.state.GetFood(ctx, id)
}

func (g *Gateway) UpdateFood(ctx context.Context, food *domain.Food) (int64, error) {
	defer g.write()()
	return g.state.UpdateFood(ctx, food)
}

func (g *Gateway) DeleteFood(ctx context.Context, id int64) (int64, error) {
	defer g.write()()
	return g.state.DeleteFood(ctx, id)
}

func (g *Gateway) InsertAddon(ctx context.Context, addon *domain.Addon) (*domain.Addon, error) {
	defer g.write()()
	return g.state.InsertAddon(ctx, addon)
}

func (g *Gateway) GetAddon(ctx context.Context, id int64) (*domain.Addon, error) {
	defer g.read()()
	return g.state.GetAddon(ctx, id)
}

func (g *Gateway) UpdateAddon(ctx context.Context, addon *domain.Addon) (int64, error) {
	defer g.write()()
	return g.state.UpdateAddon(ctx, addon)
}

func (g *Gateway) DeleteAddon(ctx context.Context, id int64) (int64, error) {
	defer g.write()()
	return g.state.DeleteAddon(ctx, id)
}

func (g *Gateway) InsertCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	defer g.write()()
	return g.state.InsertCustomer(ctx, customer)
}

func (g *Gateway) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	defer g.read()()
	return g.state.GetCustomer(ctx, id)
}

func (g *Gateway) UpdateCustomer(ctx context.Context, customer *domain.Customer) (int64, error) {
	defer g.write()()
	return g.state.UpdateCustomer(ctx, customer)
}

func (g *Gateway) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	defer g.write()()
	return g.state.DeleteCustomer(ctx, id)
}

func (g *Gateway) InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	defer g.write()()
	return g.state.InsertOrder(ctx, order)
}

func (g *Gateway) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	defer g.read()()
	return g.state.GetOrder(ctx, id)
}

func (g *Gateway) UpdateOrder(ctx context.Context, order *domain.Order) (int64, error) {
	defer g.write()()
	return g.state.UpdateOrder(ctx, order)
}

func (g *Gateway) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	defer g.write()()
	return g.state.DeleteOrder(ctx, id)
}

func (g *Gateway) InsertOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	defer g.write()()
	return g.state.InsertOrderItem(ctx, item)
}

func (g *Gateway) GetOrderItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	defer g.read()()
	return g.state.GetOrderItem(ctx, id)
}

func (g *Gateway) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	defer g.read()()
	return g.state.ListOrderItems(ctx, orderID)
}

func (g *Gateway) DeleteOrderItem(ctx context.Context, id int64) (int64, error) {
	defer g.write()()
	return g.state.DeleteOrderItem(ctx, id)
}

func (g *Gateway) InsertItemMod(ctx context.Context, mod domain.ItemMod) error {
	defer g.write()()
	return g.state.InsertItemMod(ctx, mod)
}

func (g *Gateway) ListItemMods(ctx context.Context, orderItemID int64) ([]domain.ItemMod, error) {
	defer g.read()()
	return g.state.ListItemMods(ctx, orderItemID)
}

func (g *Gateway) DeleteItemMod(ctx context.Context, orderItemID, addonID int64) (int64, error) {
	defer g.write()()
	return g.state.DeleteItemMod(ctx, orderItemID, addonID)
}

func (g *Gateway) InsertCustomerOrder(ctx context.Context, link domain.CustomerOrder) error {
	defer g.write()()
	return g.state.InsertCustomerOrder(ctx, link)
}

func (g *Gateway) ListOrdersOfCustomer(ctx context.Context, customerID int64) ([]domain.CustomerOrder, error) {
	defer g.read()()
	return g.state.ListOrdersOfCustomer(ctx, customerID)
}

func (g *Gateway) ListCustomersOfOrder(ctx context.Context, orderID int64) ([]domain.CustomerOrder, error) {
	defer g.read()()
	return g.state.ListCustomersOfOrder(ctx, orderID)
}

func (g *Gateway) DeleteCustomerOrder(ctx context.Context, link domain.CustomerOrder) (int64, error) {
	defer g.write()()
	return g.state.DeleteCustomerOrder(ctx, link)
}
