package application

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// CreateFood adds a food to the menu. When the category requires a size and none
// was supplied it returns ok=false and no error.
func (s *Service) CreateFood(ctx context.Context, input types.CreateFoodInput) (*domain.Food, bool, error) {
	var created *domain.Food
	err := s.inTx(ctx, func(u unit) error {
		var err error
		created, err = u.manage.CreateFood(ctx, domain.Food{
			Name:     input.Name,
			Category: input.Category,
			Price:    input.Price,
			Size:     input.Size,
		})
		return err
	})
	if errors.Is(err, apperrors.ErrMissingFoodSize) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// CreateAddon adds an addon to the menu. Size violations are returned as MissingFoodSize.
func (s *Service) CreateAddon(ctx context.Context, input types.CreateAddonInput) (*domain.Addon, error) {
	var created *domain.Addon
	err := s.inTx(ctx, func(u unit) error {
		var err error
		created, err = u.manage.CreateAddon(ctx, domain.Addon{
			Name:  input.Name,
			Type:  input.Type,
			Price: input.Price,
			Size:  input.Size,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) CreateCustomer(ctx context.Context, input types.CreateCustomerInput) (*domain.Customer, error) {
	var created *domain.Customer
	err := s.inTx(ctx, func(u unit) error {
		var err error
		created, err = u.manage.CreateCustomer(ctx, domain.Customer{
			Name:    input.Name,
			Phone:   input.Phone,
			Address: input.Address,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateOrder stores the order, links it to the customer and adds every requested
// item with its addons. The total is accumulated while items are added. Any
// failure rolls the whole order back.
func (s *Service) CreateOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	if err := domain.ValidateItemRequests(input.Items); err != nil {
		return nil, mapError(err)
	}
	if s.idempotency != nil && strings.TrimSpace(input.IdempotencyKey) != "" {
		return s.placeIdempotent(ctx, input)
	}
	return s.placeOrder(ctx, input)
}

func (s *Service) placeOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	var view *types.OrderView
	err := s.inTx(ctx, func(u unit) error {
		order, err := u.manage.CreateOrder(ctx, domain.Order{
			PaymentMethod: input.PaymentMethod,
			Type:          input.Type,
		})
		if err != nil {
			return err
		}
		if _, err := u.view.Customer(ctx, input.CustomerID); err != nil {
			if isNotFound(err) {
				return apperrors.ErrCustomerNotFound.
					WithMessagef("Customer %d not found", input.CustomerID).
					WithData("customer_id", input.CustomerID)
			}
			return err
		}
		if err := u.manage.LinkCustomer(ctx, input.CustomerID, order.ID); err != nil {
			return err
		}
		items, total, err := addItems(ctx, u, order.ID, input.Items)
		if err != nil {
			return err
		}
		customerID := input.CustomerID
		view = &types.OrderView{
			ID:            order.ID,
			Date:          order.Date,
			PaymentMethod: order.PaymentMethod,
			Type:          order.Type,
			CustomerID:    &customerID,
			Items:         items,
			Total:         total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.OrderPlaced{
		BaseEvent:  s.base(),
		OrderID:    view.ID,
		CustomerID: input.CustomerID,
		ItemCount:  len(view.Items),
		Total:      view.Total,
	})
	return view, nil
}

// addItems snapshots food and addon prices into new order items and item mods and
// returns the added items with their running total.
func addItems(ctx context.Context, u unit, orderID int64, requests []domain.ItemRequest) ([]types.OrderItemView, decimal.Decimal, error) {
	total := decimal.Zero
	views := make([]types.OrderItemView, 0, len(requests))
	for _, req := range requests {
		food, err := u.view.Food(ctx, req.FoodID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		item, err := u.manage.AddOrderItem(ctx, orderID, food)
		if err != nil {
			return nil, decimal.Zero, err
		}
		total = total.Add(item.Price)
		itemView := types.OrderItemView{ID: item.ID, FoodID: item.FoodID, Price: item.Price, Addons: []types.ItemModView{}}
		for _, addonID := range req.AddonIDs {
			addon, err := u.view.Addon(ctx, addonID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			mod, err := u.manage.AddItemMod(ctx, item.ID, addon)
			if err != nil {
				return nil, decimal.Zero, err
			}
			total = total.Add(mod.Price)
			itemView.Addons = append(itemView.Addons, types.ItemModView{AddonID: mod.AddonID, Qty: mod.Qty, Price: mod.Price})
		}
		views = append(views, itemView)
	}
	return views, total, nil
}
