package memory

import (
	"context"
	"sort"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

type modKey struct {
	orderItemID int64
	addonID     int64
}

type sequences struct {
	food, addon, customer, order, item int64
}

// state holds every table. It does no locking; Gateway serialises access to it.
type state struct {
	foods     map[int64]domain.Food
	addons    map[int64]domain.Addon
	customers map[int64]domain.Customer
	orders    map[int64]domain.Order
	items     map[int64]domain.OrderItem
	mods      map[modKey]domain.ItemMod
	links     map[domain.CustomerOrder]struct{}
	seq       sequences
}

func newState() *state {
	return &state{
		foods:     map[int64]domain.Food{},
		addons:    map[int64]domain.Addon{},
		customers: map[int64]domain.Customer{},
		orders:    map[int64]domain.Order{},
		items:     map[int64]domain.OrderItem{},
		mods:      map[modKey]domain.ItemMod{},
		links:     map[domain.CustomerOrder]struct{}{},
	}
}

// snapshot copies the tables so a failed unit of work can be undone.
func (s *state) snapshot() *state {
	cp := &state{
		foods:     make(map[int64]domain.Food, len(s.foods)),
		addons:    make(map[int64]domain.Addon, len(s.addons)),
		customers: make(map[int64]domain.Customer, len(s.customers)),
		orders:    make(map[int64]domain.Order, len(s.orders)),
		items:     make(map[int64]domain.OrderItem, len(s.items)),
		mods:      make(map[modKey]domain.ItemMod, len(s.mods)),
		links:     make(map[domain.CustomerOrder]struct{}, len(s.links)),
		seq:       s.seq,
	}
	for k, v := range s.foods {
		cp.foods[k] = v
	}
	for k, v := range s.addons {
		cp.addons[k] = v
	}
	for k, v := range s.customers {
		cp.customers[k] = v
	}
	for k, v := range s.orders {
		cp.orders[k] = v
	}
	for k, v := range s.items {
		cp.items[k] = v
	}
	for k, v := range s.mods {
		cp.mods[k] = v
	}
	for k := range s.links {
		cp.links[k] = struct{}{}
	}
	return cp
}

func (s *state) InsertFood(_ context.Context, food *domain.Food) (*domain.Food, error) {
	s.seq.food++
	clone := cloneFood(*food)
	clone.ID = s.seq.food
	s.foods[clone.ID] = clone
	out := cloneFood(clone)
	return &out, nil
}

func (s *state) GetFood(_ context.Context, id int64) (*domain.Food, error) {
	food, ok := s.foods[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := cloneFood(food)
	return &out, nil
}

func (s *state) UpdateFood(_ context.Context, food *domain.Food) (int64, error) {
	if _, ok := s.foods[food.ID]; !ok {
		return 0, nil
	}
	s.foods[food.ID] = cloneFood(*food)
	return 1, nil
}

func (s *state) DeleteFood(_ context.Context, id int64) (int64, error) {
	if _, ok := s.foods[id]; !ok {
		return 0, nil
	}
	delete(s.foods, id)
	return 1, nil
}

func (s *state) InsertAddon(_ context.Context, addon *domain.Addon) (*domain.Addon, error) {
	s.seq.addon++
	clone := cloneAddon(*addon)
	clone.ID = s.seq.addon
	s.addons[clone.ID] = clone
	out := cloneAddon(clone)
	return &out, nil
}

func (s *state) GetAddon(_ context.Context, id int64) (*domain.Addon, error) {
	addon, ok := s.addons[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := cloneAddon(addon)
	return &out, nil
}

func (s *state) UpdateAddon(_ context.Context, addon *domain.Addon) (int64, error) {
	if _, ok := s.addons[addon.ID]; !ok {
		return 0, nil
	}
	s.addons[addon.ID] = cloneAddon(*addon)
	return 1, nil
}

func (s *state) DeleteAddon(_ context.Context, id int64) (int64, error) {
	if _, ok := s.addons[id]; !ok {
		return 0, nil
	}
	delete(s.addons, id)
	return 1, nil
}

func (s *state) InsertCustomer(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	s.seq.customer++
	clone := cloneCustomer(*customer)
	clone.ID = s.seq.customer
	s.customers[clone.ID] = clone
	out := cloneCustomer(clone)
	return &out, nil
}

func (s *state) GetCustomer(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := cloneCustomer(customer)
	return &out, nil
}

func (s *state) UpdateCustomer(_ context.Context, customer *domain.Customer) (int64, error) {
	if _, ok := s.customers[customer.ID]; !ok {
		return 0, nil
	}
	s.customers[customer.ID] = cloneCustomer(*customer)
	return 1, nil
}

func (s *state) DeleteCustomer(_ context.Context, id int64) (int64, error) {
	if _, ok := s.customers[id]; !ok {
		return 0, nil
	}
	for link := range s.links {
		if link.CustomerID == id {
			return 0, ports.ErrForeignKeyViolation
		}
	}
	delete(s.customers, id)
	return 1, nil
}

func (s *state) InsertOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	s.seq.order++
	clone := *order
	clone.ID = s.seq.order
	s.orders[clone.ID] = clone
	return &clone, nil
}

func (s *state) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &order, nil
}

func (s *state) UpdateOrder(_ context.Context, order *domain.Order) (int64, error) {
	existing, ok := s.orders[order.ID]
	if !ok {
		return 0, nil
	}
	existing.PaymentMethod = order.PaymentMethod
	existing.Type = order.Type
	s.orders[order.ID] = existing
	return 1, nil
}

func (s *state) DeleteOrder(_ context.Context, id int64) (int64, error) {
	if _, ok := s.orders[id]; !ok {
		return 0, nil
	}
	for link := range s.links {
		if link.OrderID == id {
			return 0, ports.ErrForeignKeyViolation
		}
	}
	for _, item := range s.items {
		if item.OrderID == id {
			return 0, ports.ErrForeignKeyViolation
		}
	}
	delete(s.orders, id)
	return 1, nil
}

func (s *state) InsertOrderItem(_ context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if _, ok := s.orders[item.OrderID]; !ok {
		return nil, ports.ErrForeignKeyViolation
	}
	s.seq.item++
	clone := *item
	clone.ID = s.seq.item
	s.items[clone.ID] = clone
	return &clone, nil
}

func (s *state) GetOrderItem(_ context.Context, id int64) (*domain.OrderItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &item, nil
}

func (s *state) ListOrderItems(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	var list []domain.OrderItem
	for _, item := range s.items {
		if item.OrderID == orderID {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *state) DeleteOrderItem(_ context.Context, id int64) (int64, error) {
	if _, ok := s.items[id]; !ok {
		return 0, nil
	}
	for key := range s.mods {
		if key.orderItemID == id {
			return 0, ports.ErrForeignKeyViolation
		}
	}
	delete(s.items, id)
	return 1, nil
}

func (s *state) InsertItemMod(_ context.Context, mod domain.ItemMod) error {
	if _, ok := s.items[mod.OrderItemID]; !ok {
		return ports.ErrForeignKeyViolation
	}
	key := modKey{orderItemID: mod.OrderItemID, addonID: mod.AddonID}
	if _, dup := s.mods[key]; dup {
		return ports.ErrDuplicateKey
	}
	s.mods[key] = mod
	return nil
}

func (s *state) ListItemMods(_ context.Context, orderItemID int64) ([]domain.ItemMod, error) {
	var list []domain.ItemMod
	for key, mod := range s.mods {
		if key.orderItemID == orderItemID {
			list = append(list, mod)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].AddonID < list[j].AddonID })
	return list, nil
}

func (s *state) DeleteItemMod(_ context.Context, orderItemID, addonID int64) (int64, error) {
	key := modKey{orderItemID: orderItemID, addonID: addonID}
	if _, ok := s.mods[key]; !ok {
		return 0, nil
	}
	delete(s.mods, key)
	return 1, nil
}

func (s *state) InsertCustomerOrder(_ context.Context, link domain.CustomerOrder) error {
	if _, ok := s.customers[link.CustomerID]; !ok {
		return ports.ErrForeignKeyViolation
	}
	if _, ok := s.orders[link.OrderID]; !ok {
		return ports.ErrForeignKeyViolation
	}
	if _, dup := s.links[link]; dup {
		return ports.ErrDuplicateKey
	}
	s.links[link] = struct{}{}
	return nil
}

func (s *state) ListOrdersOfCustomer(_ context.Context, customerID int64) ([]domain.CustomerOrder, error) {
	return s.filterLinks(func(l domain.CustomerOrder) bool { return l.CustomerID == customerID }), nil
}

func (s *state) ListCustomersOfOrder(_ context.Context, orderID int64) ([]domain.CustomerOrder, error) {
	return s.filterLinks(func(l domain.CustomerOrder) bool { return l.OrderID == orderID }), nil
}

func (s *state) DeleteCustomerOrder(_ context.Context, link domain.CustomerOrder) (int64, error) {
	if _, ok := s.links[link]; !ok {
		return 0, nil
	}
	delete(s.links, link)
	return 1, nil
}

func (s *state) filterLinks(match func(domain.CustomerOrder) bool) []domain.CustomerOrder {
	var list []domain.CustomerOrder
	for link := range s.links {
		if match(link) {
			list = append(list, link)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].OrderID != list[j].OrderID {
			return list[i].OrderID < list[j].OrderID
		}
		return list[i].CustomerID < list[j].CustomerID
	})
	return list
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func cloneFood(f domain.Food) domain.Food {
	f.Size = cloneString(f.Size)
	return f
}

func cloneAddon(a domain.Addon) domain.Addon {
	a.Size = cloneString(a.Size)
	return a
}

func cloneCustomer(c domain.Customer) domain.Customer {
	c.Address = domain.Address{
		Street:     cloneString(c.Address.Street),
		City:       cloneString(c.Address.City),
		Province:   cloneString(c.Address.Province),
		PostalCode: cloneString(c.Address.PostalCode),
	}
	return c
}
