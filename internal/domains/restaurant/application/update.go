package application

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

func (s *Service) UpdateFoodName(ctx context.Context, id int64, name string) (bool, error) {
	return s.patchFood(ctx, id, domain.FoodPatch{Name: &name})
}

func (s *Service) UpdateFoodPrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	return s.patchFood(ctx, id, domain.FoodPatch{Price: &price})
}

func (s *Service) UpdateFoodCategory(ctx context.Context, id int64, category string) (bool, error) {
	return s.patchFood(ctx, id, domain.FoodPatch{Category: &category})
}

// UpdateFoodSize sets the size; an empty size clears it.
func (s *Service) UpdateFoodSize(ctx context.Context, id int64, size string) (bool, error) {
	return s.patchFood(ctx, id, domain.FoodPatch{Size: &size})
}

func (s *Service) patchFood(ctx context.Context, id int64, patch domain.FoodPatch) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		_, err := u.manage.UpdateFood(ctx, id, patch)
		return err
	}))
}

// UpdateFood applies every supplied field on its own. A new size goes before the
// category so a move into a size-required category can bring it along; clearing the
// size goes after, once the category no longer requires one.
func (s *Service) UpdateFood(ctx context.Context, id int64, patch domain.FoodPatch) (*domain.Food, types.FieldResults, error) {
	if patch.IsEmpty() {
		return nil, nil, errNoAttributes
	}
	if _, err := NewViewer(s.gateway).Food(ctx, id); err != nil {
		return nil, nil, err
	}
	var fields []fieldUpdate
	if patch.Name != nil {
		fields = append(fields, fieldUpdate{"name", func() (bool, error) { return s.UpdateFoodName(ctx, id, *patch.Name) }})
	}
	if patch.Price != nil {
		fields = append(fields, fieldUpdate{"price", func() (bool, error) { return s.UpdateFoodPrice(ctx, id, *patch.Price) }})
	}
	var size []fieldUpdate
	if patch.Size != nil {
		size = []fieldUpdate{{"size", func() (bool, error) { return s.UpdateFoodSize(ctx, id, *patch.Size) }}}
	}
	var category []fieldUpdate
	if patch.Category != nil {
		category = []fieldUpdate{{"category", func() (bool, error) { return s.UpdateFoodCategory(ctx, id, *patch.Category) }}}
	}
	fields = append(fields, sizeAndCategory(patch.Size, size, category)...)
	results, err := applyFields(fields)
	if err != nil {
		return nil, nil, err
	}
	food, err := NewViewer(s.gateway).Food(ctx, id)
	if err != nil {
		return nil, nil, vanished(err, "Food", id)
	}
	return food, results, nil
}

func (s *Service) UpdateAddonName(ctx context.Context, id int64, name string) (bool, error) {
	return s.patchAddon(ctx, id, domain.AddonPatch{Name: &name})
}

func (s *Service) UpdateAddonPrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	return s.patchAddon(ctx, id, domain.AddonPatch{Price: &price})
}

func (s *Service) UpdateAddonType(ctx context.Context, id int64, addonType string) (bool, error) {
	return s.patchAddon(ctx, id, domain.AddonPatch{Type: &addonType})
}

func (s *Service) UpdateAddonSize(ctx context.Context, id int64, size string) (bool, error) {
	return s.patchAddon(ctx, id, domain.AddonPatch{Size: &size})
}

func (s *Service) patchAddon(ctx context.Context, id int64, patch domain.AddonPatch) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		_, err := u.manage.UpdateAddon(ctx, id, patch)
		return err
	}))
}

// UpdateAddon applies every supplied field on its own, ordering size and type like UpdateFood.
func (s *Service) UpdateAddon(ctx context.Context, id int64, patch domain.AddonPatch) (*domain.Addon, types.FieldResults, error) {
	if patch.IsEmpty() {
		return nil, nil, errNoAttributes
	}
	if _, err := NewViewer(s.gateway).Addon(ctx, id); err != nil {
		return nil, nil, err
	}
	var fields []fieldUpdate
	if patch.Name != nil {
		fields = append(fields, fieldUpdate{"name", func() (bool, error) { return s.UpdateAddonName(ctx, id, *patch.Name) }})
	}
	if patch.Price != nil {
		fields = append(fields, fieldUpdate{"price", func() (bool, error) { return s.UpdateAddonPrice(ctx, id, *patch.Price) }})
	}
	var size []fieldUpdate
	if patch.Size != nil {
		size = []fieldUpdate{{"size", func() (bool, error) { return s.UpdateAddonSize(ctx, id, *patch.Size) }}}
	}
	var addonType []fieldUpdate
	if patch.Type != nil {
		addonType = []fieldUpdate{{"type", func() (bool, error) { return s.UpdateAddonType(ctx, id, *patch.Type) }}}
	}
	fields = append(fields, sizeAndCategory(patch.Size, size, addonType)...)
	results, err := applyFields(fields)
	if err != nil {
		return nil, nil, err
	}
	addon, err := NewViewer(s.gateway).Addon(ctx, id)
	if err != nil {
		return nil, nil, vanished(err, "Addon", id)
	}
	return addon, results, nil
}

func (s *Service) UpdateCustomerName(ctx context.Context, id int64, name string) (bool, error) {
	return s.patchCustomer(ctx, id, domain.CustomerPatch{Name: &name})
}

func (s *Service) UpdateCustomerPhone(ctx context.Context, id int64, phone string) (bool, error) {
	return s.patchCustomer(ctx, id, domain.CustomerPatch{Phone: &phone})
}

// UpdateCustomerAddress changes the supplied address lines together.
func (s *Service) UpdateCustomerAddress(ctx context.Context, id int64, address domain.AddressPatch) (bool, error) {
	return s.patchCustomer(ctx, id, domain.CustomerPatch{Address: address})
}

func (s *Service) UpdateCustomerStreet(ctx context.Context, id int64, street string) (bool, error) {
	return s.UpdateCustomerAddress(ctx, id, domain.AddressPatch{Street: &street})
}

func (s *Service) UpdateCustomerCity(ctx context.Context, id int64, city string) (bool, error) {
	return s.UpdateCustomerAddress(ctx, id, domain.AddressPatch{City: &city})
}

func (s *Service) UpdateCustomerProvince(ctx context.Context, id int64, province string) (bool, error) {
	return s.UpdateCustomerAddress(ctx, id, domain.AddressPatch{Province: &province})
}

func (s *Service) UpdateCustomerPostalCode(ctx context.Context, id int64, postalCode string) (bool, error) {
	return s.UpdateCustomerAddress(ctx, id, domain.AddressPatch{PostalCode: &postalCode})
}

func (s *Service) patchCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		_, err := u.manage.UpdateCustomer(ctx, id, patch)
		return err
	}))
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, types.FieldResults, error) {
	if patch.IsEmpty() {
		return nil, nil, errNoAttributes
	}
	if _, err := NewViewer(s.gateway).Customer(ctx, id); err != nil {
		return nil, nil, err
	}
	var fields []fieldUpdate
	if patch.Name != nil {
		fields = append(fields, fieldUpdate{"name", func() (bool, error) { return s.UpdateCustomerName(ctx, id, *patch.Name) }})
	}
	if patch.Phone != nil {
		fields = append(fields, fieldUpdate{"phone", func() (bool, error) { return s.UpdateCustomerPhone(ctx, id, *patch.Phone) }})
	}
	if a := patch.Address; a.Street != nil {
		fields = append(fields, fieldUpdate{"street", func() (bool, error) { return s.UpdateCustomerStreet(ctx, id, *a.Street) }})
	}
	if a := patch.Address; a.City != nil {
		fields = append(fields, fieldUpdate{"city", func() (bool, error) { return s.UpdateCustomerCity(ctx, id, *a.City) }})
	}
	if a := patch.Address; a.Province != nil {
		fields = append(fields, fieldUpdate{"province", func() (bool, error) { return s.UpdateCustomerProvince(ctx, id, *a.Province) }})
	}
	if a := patch.Address; a.PostalCode != nil {
		fields = append(fields, fieldUpdate{"postal_code", func() (bool, error) { return s.UpdateCustomerPostalCode(ctx, id, *a.PostalCode) }})
	}
	results, err := applyFields(fields)
	if err != nil {
		return nil, nil, err
	}
	customer, err := NewViewer(s.gateway).Customer(ctx, id)
	if err != nil {
		return nil, nil, vanished(err, "Customer", id)
	}
	return customer, results, nil
}

func (s *Service) UpdateOrderPaymentMethod(ctx context.Context, id int64, method string) (bool, error) {
	return s.patchOrder(ctx, id, domain.OrderPatch{PaymentMethod: &method})
}

func (s *Service) UpdateOrderType(ctx context.Context, id int64, orderType string) (bool, error) {
	return s.patchOrder(ctx, id, domain.OrderPatch{Type: &orderType})
}

func (s *Service) patchOrder(ctx context.Context, id int64, patch domain.OrderPatch) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		_, err := u.manage.UpdateOrder(ctx, id, patch)
		return err
	}))
}

// UpdateOrderCustomer moves an order to another customer. An order that is not
// linked to anyone is reported as not found and stays unlinked.
func (s *Service) UpdateOrderCustomer(ctx context.Context, id, customerID int64) (bool, error) {
	return softNotFound(s.inTx(ctx, func(u unit) error {
		if err := u.manage.DeleteOrderLinks(ctx, id); err != nil {
			return err
		}
		if _, err := u.view.Customer(ctx, customerID); err != nil {
			if isNotFound(err) {
				return apperrors.ErrCustomerNotFound.
					WithMessagef("Customer %d not found", customerID).
					WithData("customer_id", customerID)
			}
			return err
		}
		return u.manage.LinkCustomer(ctx, customerID, id)
	}))
}

// UpdateOrderItems appends items to an existing order. The new total is visible on the next FindOrder.
func (s *Service) UpdateOrderItems(ctx context.Context, id int64, items []domain.ItemRequest) (bool, error) {
	if err := domain.ValidateItemRequests(items); err != nil {
		return false, mapError(err)
	}
	return softNotFound(s.inTx(ctx, func(u unit) error {
		if _, err := u.view.Order(ctx, id); err != nil {
			return err
		}
		_, _, err := addItems(ctx, u, id, items)
		if isNotFound(err) {
			// a missing food or addon must not read as a missing order
			f, _ := apperrors.AsFailure(err)
			return apperrors.ErrImproperEntryData.WithMessage(f.Message)
		}
		return err
	}))
}

// UpdateOrder applies each supplied change on its own and returns the recomposed order.
func (s *Service) UpdateOrder(ctx context.Context, id int64, changes types.OrderChanges) (*types.OrderView, types.FieldResults, error) {
	if changes.IsEmpty() {
		return nil, nil, errNoAttributes
	}
	if _, err := NewViewer(s.gateway).Order(ctx, id); err != nil {
		return nil, nil, err
	}
	var fields []fieldUpdate
	if changes.PaymentMethod != nil {
		fields = append(fields, fieldUpdate{"payment_method", func() (bool, error) { return s.UpdateOrderPaymentMethod(ctx, id, *changes.PaymentMethod) }})
	}
	if changes.Type != nil {
		fields = append(fields, fieldUpdate{"type", func() (bool, error) { return s.UpdateOrderType(ctx, id, *changes.Type) }})
	}
	if changes.CustomerID != nil {
		fields = append(fields, fieldUpdate{"customer_id", func() (bool, error) { return s.UpdateOrderCustomer(ctx, id, *changes.CustomerID) }})
	}
	if len(changes.Items) > 0 {
		fields = append(fields, fieldUpdate{"items", func() (bool, error) { return s.UpdateOrderItems(ctx, id, changes.Items) }})
	}
	results, err := applyFields(fields)
	if err != nil {
		return nil, nil, err
	}
	view, ok, err := s.FindOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, vanished(nil, "Order", id)
	}
	return view, results, nil
}

type fieldUpdate struct {
	name  string
	apply func() (bool, error)
}

// applyFields runs each update and records whether it took effect. Typed failures
// count as a failed field; anything else aborts.
func applyFields(fields []fieldUpdate) (types.FieldResults, error) {
	results := make(types.FieldResults, len(fields))
	for _, field := range fields {
		ok, err := field.apply()
		if err != nil {
			if _, typed := apperrors.AsFailure(err); !typed {
				return nil, err
			}
			ok = false
		}
		results[field.name] = ok
	}
	return results, nil
}

// sizeAndCategory orders the size update around the category update: a size being
// cleared runs last, any other size runs first.
func sizeAndCategory(newSize *string, size, category []fieldUpdate) []fieldUpdate {
	if newSize != nil && strings.TrimSpace(*newSize) == "" {
		return append(category, size...)
	}
	return append(size, category...)
}

// vanished reports a record that existed before a bulk update but not after it.
func vanished(err error, entity string, id int64) error {
	if err != nil && !isNotFound(err) {
		return err
	}
	return apperrors.ErrDataInconsistency.WithMessagef("%s %d disappeared while it was being updated", entity, id)
}
