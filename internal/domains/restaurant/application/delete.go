package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

func (s *Service) DeleteFood(ctx context.Context, id int64) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		return u.manage.DeleteFood(ctx, id)
	}))
}

func (s *Service) DeleteAddon(ctx context.Context, id int64) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		return u.manage.DeleteAddon(ctx, id)
	}))
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64, cascade bool) (bool, error) {
	var removed []int64
	err := s.inTx(ctx, func(u unit) error {
		if _, err := u.view.Customer(ctx, id); err != nil {
			return err
		}
		links, err := u.view.CustomerOrders(ctx, id)
		if err != nil && !isNotFound(err) {
			return err
		}
		if len(links) > 0 && !cascade {
			return mustDeleteOrdersFirst(id, len(links))
		}
		for _, link := range links {
			if err := deleteOrderCascade(ctx, u, link.OrderID); err != nil && !isNotFound(err) {
				return err
			}
			removed = append(removed, link.OrderID)
		}
		err = u.manage.DeleteCustomer(ctx, id)
		if errors.Is(err, ports.ErrForeignKeyViolation) {
			return mustDeleteOrdersFirst(id, len(links))
		}
		return err
	})
	ok, err := softNotFound(err)
	if !ok {
		return false, err
	}
	events := make([]domain.Event, 0, len(removed)+1)
	for _, orderID := range removed {
		events = append(events, domain.OrderDeleted{BaseEvent: s.base(), OrderID: orderID})
	}
	events = append(events, domain.CustomerDeleted{BaseEvent: s.base(), CustomerID: id, OrderIDs: removed})
	s.publish(ctx, events...)
	return true, nil
}

func mustDeleteOrdersFirst(customerID int64, orders int) error {
	return apperrors.ErrMustDeleteOrdersFirst.
		WithData("customer_id", customerID).
		WithData("orders", orders)
}

// DeleteOrder removes an order with its customer link, items and item mods.
// Only a missing order is an error; missing children are skipped.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.inTx(ctx, func(u unit) error {
		return deleteOrderCascade(ctx, u, id)
	}); err != nil {
		return err
	}
	s.publish(ctx, domain.OrderDeleted{BaseEvent: s.base(), OrderID: id})
	return nil
}

func deleteOrderCascade(ctx context.Context, u unit, id int64) error {
	if err := u.manage.DeleteOrderLinks(ctx, id); err != nil && !isNotFound(err) {
		return err
	}
	items, err := u.view.OrderItems(ctx, id)
	if err != nil && !isNotFound(err) {
		return err
	}
	for _, item := range items {
		if err := u.manage.DeleteItemMods(ctx, item.ID); err != nil && !isNotFound(err) {
			return err
		}
	}
	if err := u.manage.DeleteOrderItems(ctx, id); err != nil && !isNotFound(err) {
		return err
	}
	return u.manage.DeleteOrder(ctx, id)
}

// DeleteOrderItem removes one item and its addons from an order and returns the
// order total derived afterwards. ok is false when the order or the item is missing.
func (s *Service) DeleteOrderItem(ctx context.Context, orderID, itemID int64) (decimal.Decimal, bool, error) {
	total := decimal.Zero
	err := s.inTx(ctx, func(u unit) error {
		if _, err := u.view.Order(ctx, orderID); err != nil {
			return err
		}
		item, err := u.view.OrderItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.OrderID != orderID {
			return apperrors.ErrEntityNotFound.WithMessagef("Order item %d does not belong to order %d", itemID, orderID)
		}
		if err := u.manage.DeleteItemMods(ctx, itemID); err != nil && !isNotFound(err) {
			return err
		}
		if err := u.manage.DeleteOrderItem(ctx, itemID); err != nil {
			return err
		}
		total, err = u.view.OrderGrandTotal(ctx, orderID)
		return err
	})
	ok, err := softNotFound(err)
	if !ok {
		return decimal.Zero, false, err
	}
	return total, true, nil
}
