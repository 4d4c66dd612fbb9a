package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway persists the restaurant in PostgreSQL using GORM. The schema is owned by
// platform/migrations; callers run it before use.
type Gateway struct {
	db   *gorm.DB
	inTx bool
}

// NewGateway wires a GORM-backed gateway. Caller manages DB lifecycle.
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// InTx runs fn in a database transaction. Nested calls join the running transaction.
func (g *Gateway) InTx(ctx context.Context, fn func(tx ports.Gateway) error) error {
	if err := g.ensureDB(); err != nil {
		return err
	}
	if g.inTx {
		return fn(g)
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx, inTx: true})
	})
}

// View runs fn in a read-only transaction so composed reads see one snapshot.
func (g *Gateway) View(ctx context.Context, fn func(tx ports.Gateway) error) error {
	if err := g.ensureDB(); err != nil {
		return err
	}
	if g.inTx {
		return fn(g)
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx, inTx: true})
	}, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
}

func (g *Gateway) InsertFood(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	rec := toFoodRecord(food)
	rec.ID = 0
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (g *Gateway) GetFood(ctx context.Context, id int64) (*domain.Food, error) {
	var rec foodRecord
	if err := g.first(ctx, &rec, id); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func (g *Gateway) UpdateFood(ctx context.Context, food *domain.Food) (int64, error) {
	return g.update(ctx, &foodRecord{}, food.ID, map[string]any{
		"name":     food.Name,
		"category": food.Category,
		"price":    food.Price,
		"size":     food.Size,
	})
}

func (g *Gateway) DeleteFood(ctx context.Context, id int64) (int64, error) {
	return g.delete(ctx, &foodRecord{}, "id = ?", id)
}

func (g *Gateway) InsertAddon(ctx context.Context, addon *domain.Addon) (*domain.Addon, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	rec := toAddonRecord(addon)
	rec.ID = 0
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (g *Gateway) GetAddon(ctx context.Context, id int64) (*domain.Addon, error) {
	var rec addonRecord
	if err := g.first(ctx, &rec, id); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func (g *Gateway) UpdateAddon(ctx context.Context, addon *domain.Addon) (int64, error) {
	return g.update(ctx, &addonRecord{}, addon.ID, map[string]any{
		"name":  addon.Name,
		"type":  addon.Type,
		"price": addon.Price,
		"size":  addon.Size,
	})
}

func (g *Gateway) DeleteAddon(ctx context.Context, id int64) (int64, error) {
	return g.delete(ctx, &addonRecord{}, "id = ?", id)
}

func (g *Gateway) InsertCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	rec := toCustomerRecord(customer)
	rec.ID = 0
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (g *Gateway) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var rec customerRecord
	if err := g.first(ctx, &rec, id); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func (g *Gateway) UpdateCustomer(ctx context.Context, customer *domain.Customer) (int64, error) {
	rec := toCustomerRecord(customer)
	return g.update(ctx, &customerRecord{}, customer.ID, map[string]any{
		"name":        rec.Name,
		"phone":       rec.Phone,
		"street":      rec.Street,
		"city":        rec.City,
		"province":    rec.Province,
		"postal_code": rec.PostalCode,
	})
}

func (g *Gateway) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	return g.delete(ctx, &customerRecord{}, "id = ?", id)
}

func (g *Gateway) InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	rec := toOrderRecord(order)
	rec.ID = 0
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (g *Gateway) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var rec orderRecord
	if err := g.first(ctx, &rec, id); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

// UpdateOrder never touches the order date.
func (g *Gateway) UpdateOrder(ctx context.Context, order *domain.Order) (int64, error) {
	return g.update(ctx, &orderRecord{}, order.ID, map[string]any{
		"payment_method": order.PaymentMethod,
		"type":           order.Type,
	})
}

func (g *Gateway) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	return g.delete(ctx, &orderRecord{}, "id = ?", id)
}

func (g *Gateway) InsertOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	rec := orderItemRecord{OrderID: item.OrderID, FoodID: item.FoodID, Price: item.Price}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toDomain()
	return &out, nil
}

func (g *Gateway) GetOrderItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	var rec orderItemRecord
	if err := g.first(ctx, &rec, id); err != nil {
		return nil, err
	}
	out := rec.toDomain()
	return &out, nil
}

func (g *Gateway) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderItemRecord
	if err := g.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	items := make([]domain.OrderItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

func (g *Gateway) DeleteOrderItem(ctx context.Context, id int64) (int64, error) {
	return g.delete(ctx, &orderItemRecord{}, "id = ?", id)
}

func (g *Gateway) InsertItemMod(ctx context.Context, mod domain.ItemMod) error {
	if err := g.ensureDB(); err != nil {
		return err
	}
	rec := itemModRecord{OrderItemID: mod.OrderItemID, AddonID: mod.AddonID, Qty: mod.Qty, Price: mod.Price}
	return translate(g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gateway) ListItemMods(ctx context.Context, orderItemID int64) ([]domain.ItemMod, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemModRecord
	if err := g.db.WithContext(ctx).Where("order_item_id = ?", orderItemID).Order("addon_id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	mods := make([]domain.ItemMod, 0, len(records))
	for _, rec := range records {
		mods = append(mods, rec.toDomain())
	}
	return mods, nil
}

func (g *Gateway) DeleteItemMod(ctx context.Context, orderItemID, addonID int64) (int64, error) {
	return g.delete(ctx, &itemModRecord{}, "order_item_id = ? AND addon_id = ?", orderItemID, addonID)
}

func (g *Gateway) InsertCustomerOrder(ctx context.Context, link domain.CustomerOrder) error {
	if err := g.ensureDB(); err != nil {
		return err
	}
	rec := customerOrderRecord{CustomerID: link.CustomerID, OrderID: link.OrderID}
	return translate(g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gateway) ListOrdersOfCustomer(ctx context.Context, customerID int64) ([]domain.CustomerOrder, error) {
	return g.links(ctx, "customer_id = ?", customerID)
}

func (g *Gateway) ListCustomersOfOrder(ctx context.Context, orderID int64) ([]domain.CustomerOrder, error) {
	return g.links(ctx, "order_id = ?", orderID)
}

func (g *Gateway) DeleteCustomerOrder(ctx context.Context, link domain.CustomerOrder) (int64, error) {
	return g.delete(ctx, &customerOrderRecord{}, "customer_id = ? AND order_id = ?", link.CustomerID, link.OrderID)
}

func (g *Gateway) links(ctx context.Context, query string, id int64) ([]domain.CustomerOrder, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	var records []customerOrderRecord
	if err := g.db.WithContext(ctx).Where(query, id).Order("order_id, customer_id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	links := make([]domain.CustomerOrder, 0, len(records))
	for _, rec := range records {
		links = append(links, rec.toDomain())
	}
	return links, nil
}

func (g *Gateway) first(ctx context.Context, dest any, id int64) error {
	if err := g.ensureDB(); err != nil {
		return err
	}
	return translate(g.db.WithContext(ctx).First(dest, "id = ?", id).Error)
}

func (g *Gateway) update(ctx context.Context, model any, id int64, columns map[string]any) (int64, error) {
	if err := g.ensureDB(); err != nil {
		return 0, err
	}
	result := g.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

func (g *Gateway) delete(ctx context.Context, model any, query string, args ...any) (int64, error) {
	if err := g.ensureDB(); err != nil {
		return 0, err
	}
	result := g.db.WithContext(ctx).Where(query, args...).Delete(model)
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

func (g *Gateway) ensureDB() error {
	if g == nil || g.db == nil {
		return errors.New("postgres restaurant gateway not configured")
	}
	return nil
}

// translate maps driver errors onto the gateway sentinels. Dialects without an
// error translator still report constraint failures in the message.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ports.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(ports.ErrForeignKeyViolation, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ports.ErrDuplicateKey, err)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "foreign key"):
		return errors.Join(ports.ErrForeignKeyViolation, err)
	case strings.Contains(msg, "unique constraint"), strings.Contains(msg, "duplicate key"):
		return errors.Join(ports.ErrDuplicateKey, err)
	}
	return err
}
