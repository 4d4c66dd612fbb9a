package application

import (
	"context"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

func (s *Service) FindFood(ctx context.Context, id int64) (*domain.Food, bool, error) {
	food, err := NewViewer(s.gateway).Food(ctx, id)
	return found(food, err)
}

func (s *Service) FindAddon(ctx context.Context, id int64) (*domain.Addon, bool, error) {
	addon, err := NewViewer(s.gateway).Addon(ctx, id)
	return found(addon, err)
}

func (s *Service) FindCustomer(ctx context.Context, id int64) (*domain.Customer, bool, error) {
	customer, err := NewViewer(s.gateway).Customer(ctx, id)
	return found(customer, err)
}

// FindOrder composes the order header, its items with their addons, the derived
// total and the linked customer. Reads share one read-only view so they see the same state.
func (s *Service) FindOrder(ctx context.Context, id int64) (*types.OrderView, bool, error) {
	var view *types.OrderView
	err := s.gateway.View(ctx, func(tx ports.Gateway) error {
		var err error
		view, err = composeOrder(ctx, NewViewer(tx), id)
		return err
	})
	return found(view, err)
}

func composeOrder(ctx context.Context, v *Viewer, id int64) (*types.OrderView, error) {
	order, err := v.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &types.OrderView{
		ID:            order.ID,
		Date:          order.Date,
		PaymentMethod: order.PaymentMethod,
		Type:          order.Type,
		Items:         []types.OrderItemView{},
	}
	items, err := v.OrderItems(ctx, id)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	for _, item := range items {
		itemView := types.OrderItemView{ID: item.ID, FoodID: item.FoodID, Price: item.Price, Addons: []types.ItemModView{}}
		mods, err := v.ItemMods(ctx, item.ID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		for _, mod := range mods {
			itemView.Addons = append(itemView.Addons, types.ItemModView{AddonID: mod.AddonID, Qty: mod.Qty, Price: mod.Price})
		}
		view.Items = append(view.Items, itemView)
	}
	if view.Total, err = v.OrderGrandTotal(ctx, id); err != nil {
		return nil, err
	}
	customerID, err := v.OrderCustomer(ctx, id)
	switch {
	case err == nil:
		view.CustomerID = &customerID
	case !isNotFound(err):
		return nil, err
	}
	return view, nil
}

// found turns EntityNotFound into found=false.
func found[T any](value *T, err error) (*T, bool, error) {
	ok, err := softNotFound(err)
	if !ok {
		return nil, false, err
	}
	return value, true, nil
}
