package mapper

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

var (
	// ErrMissingFields is returned when a create payload lacks a required attribute.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrInvalidItems is returned when an items map is keyed by something other than a food id.
	ErrInvalidItems = errors.New("items must be keyed by food id")
)

// Items maps a food id to the ids of the addons applied to it.
type Items map[string][]int64

// OrderPayload captures inbound order attributes. OrderType and OrderItems are the
// update spellings, Type is the create spelling.
type OrderPayload struct {
	PaymentMethod *string `json:"payment_method"`
	Type          *string `json:"type"`
	OrderType     *string `json:"order_type"`
	CustomerID    *int64  `json:"customer_id"`
	OrderItems    Items   `json:"order_items"`
}

// OrderRequest is the body of order create and update calls.
type OrderRequest struct {
	Order *OrderPayload `json:"order"`
	Items Items         `json:"items"`
}

// Order is the HTTP representation of a composed order.
type Order struct {
	ID            int64           `json:"order_id"`
	Date          time.Time       `json:"order_date"`
	PaymentMethod string          `json:"payment_method"`
	Type          string          `json:"order_type"`
	CustomerID    *int64          `json:"customer_id"`
	Items         []OrderItem     `json:"order_items"`
	Price         decimal.Decimal `json:"order_price"`
}

// OrderItem is one item of an order with its addons.
type OrderItem struct {
	ID     int64           `json:"order_item_id"`
	FoodID int64           `json:"food_id"`
	Price  decimal.Decimal `json:"order_item_price"`
	Addons []ItemMod       `json:"addons"`
}

// ItemMod is an addon applied to an order item.
type ItemMod struct {
	AddonID int64           `json:"addon_id"`
	Qty     int32           `json:"item_mod_qty"`
	Price   decimal.Decimal `json:"item_mod_price"`
}

// OrderTotal is returned after an item was removed from an order.
type OrderTotal struct {
	OrderID int64           `json:"order_id"`
	Price   decimal.Decimal `json:"order_price"`
}

// ToItemRequests converts an items map into requests ordered by food id.
func ToItemRequests(items Items) ([]domain.ItemRequest, error) {
	out := make([]domain.ItemRequest, 0, len(items))
	for key, addons := range items {
		foodID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || foodID <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidItems, key)
		}
		out = append(out, domain.ItemRequest{FoodID: foodID, AddonIDs: append([]int64(nil), addons...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FoodID < out[j].FoodID })
	return out, nil
}

// ToPlaceOrderInput requires payment method, type and at least one item.
func ToPlaceOrderInput(customerID int64, req OrderRequest) (types.PlaceOrderInput, error) {
	if req.Order == nil || req.Order.PaymentMethod == nil || orderType(req.Order) == nil || len(req.Items) == 0 {
		return types.PlaceOrderInput{}, ErrMissingFields
	}
	items, err := ToItemRequests(req.Items)
	if err != nil {
		return types.PlaceOrderInput{}, err
	}
	return types.PlaceOrderInput{
		CustomerID:    customerID,
		PaymentMethod: *req.Order.PaymentMethod,
		Type:          *orderType(req.Order),
		Items:         items,
	}, nil
}

// ToOrderChanges maps an update payload; both type spellings are accepted.
func ToOrderChanges(p OrderPayload) (types.OrderChanges, error) {
	changes := types.OrderChanges{
		PaymentMethod: p.PaymentMethod,
		Type:          orderType(&p),
		CustomerID:    p.CustomerID,
	}
	if len(p.OrderItems) > 0 {
		items, err := ToItemRequests(p.OrderItems)
		if err != nil {
			return types.OrderChanges{}, err
		}
		changes.Items = items
	}
	return changes, nil
}

func orderType(p *OrderPayload) *string {
	if p.OrderType != nil {
		return p.OrderType
	}
	return p.Type
}

func FromOrderView(v *types.OrderView) Order {
	if v == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(v.Items))
	for _, it := range v.Items {
		mods := make([]ItemMod, 0, len(it.Addons))
		for _, m := range it.Addons {
			mods = append(mods, ItemMod{AddonID: m.AddonID, Qty: m.Qty, Price: m.Price})
		}
		items = append(items, OrderItem{ID: it.ID, FoodID: it.FoodID, Price: it.Price, Addons: mods})
	}
	return Order{
		ID:            v.ID,
		Date:          v.Date,
		PaymentMethod: v.PaymentMethod,
		Type:          v.Type,
		CustomerID:    v.CustomerID,
		Items:         items,
		Price:         v.Total,
	}
}
