package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

// Records map the restaurant tables created by platform/migrations.

type foodRecord struct {
	ID       int64           `gorm:"primaryKey;column:id"`
	Name     string          `gorm:"column:name"`
	Category string          `gorm:"column:category"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(7,2)"`
	Size     *string         `gorm:"column:size"`
}

func (foodRecord) TableName() string { return "foods" }

type addonRecord struct {
	ID    int64           `gorm:"primaryKey;column:id"`
	Name  string          `gorm:"column:name"`
	Type  string          `gorm:"column:type"`
	Price decimal.Decimal `gorm:"column:price;type:numeric(7,2)"`
	Size  *string         `gorm:"column:size"`
}

func (addonRecord) TableName() string { return "addons" }

type customerRecord struct {
	ID         int64   `gorm:"primaryKey;column:id"`
	Name       string  `gorm:"column:name"`
	Phone      string  `gorm:"column:phone"`
	Street     *string `gorm:"column:street"`
	City       *string `gorm:"column:city"`
	Province   *string `gorm:"column:province"`
	PostalCode *string `gorm:"column:postal_code"`
}

func (customerRecord) TableName() string { return "customers" }

type orderRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	Date          time.Time `gorm:"column:date"`
	PaymentMethod string    `gorm:"column:payment_method"`
	Type          string    `gorm:"column:type"`
}

func (orderRecord) TableName() string { return "orders" }

type customerOrderRecord struct {
	CustomerID int64 `gorm:"primaryKey;autoIncrement:false;column:customer_id"`
	OrderID    int64 `gorm:"primaryKey;autoIncrement:false;column:order_id"`
}

func (customerOrderRecord) TableName() string { return "customer_orders" }

type orderItemRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	OrderID int64           `gorm:"column:order_id"`
	FoodID  int64           `gorm:"column:food_id"`
	Price   decimal.Decimal `gorm:"column:price;type:numeric(7,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type itemModRecord struct {
	OrderItemID int64           `gorm:"primaryKey;autoIncrement:false;column:order_item_id"`
	AddonID     int64           `gorm:"primaryKey;autoIncrement:false;column:addon_id"`
	Qty         int32           `gorm:"column:qty"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(7,2)"`
}

func (itemModRecord) TableName() string { return "item_mods" }

func toFoodRecord(f *domain.Food) foodRecord {
	return foodRecord{ID: f.ID, Name: f.Name, Category: f.Category, Price: f.Price, Size: f.Size}
}

func (r foodRecord) toDomain() *domain.Food {
	return &domain.Food{ID: r.ID, Name: r.Name, Category: r.Category, Price: r.Price, Size: r.Size}
}

func toAddonRecord(a *domain.Addon) addonRecord {
	return addonRecord{ID: a.ID, Name: a.Name, Type: a.Type, Price: a.Price, Size: a.Size}
}

func (r addonRecord) toDomain() *domain.Addon {
	return &domain.Addon{ID: r.ID, Name: r.Name, Type: r.Type, Price: r.Price, Size: r.Size}
}

func toCustomerRecord(c *domain.Customer) customerRecord {
	return customerRecord{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Street:     c.Address.Street,
		City:       c.Address.City,
		Province:   c.Address.Province,
		PostalCode: c.Address.PostalCode,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:    r.ID,
		Name:  r.Name,
		Phone: r.Phone,
		Address: domain.Address{
			Street:     r.Street,
			City:       r.City,
			Province:   r.Province,
			PostalCode: r.PostalCode,
		},
	}
}

func toOrderRecord(o *domain.Order) orderRecord {
	return orderRecord{ID: o.ID, Date: o.Date, PaymentMethod: o.PaymentMethod, Type: o.Type}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{ID: r.ID, Date: r.Date.UTC(), PaymentMethod: r.PaymentMethod, Type: r.Type}
}

func (r orderItemRecord) toDomain() domain.OrderItem {
	return domain.OrderItem{ID: r.ID, OrderID: r.OrderID, FoodID: r.FoodID, Price: r.Price}
}

func (r itemModRecord) toDomain() domain.ItemMod {
	return domain.ItemMod{OrderItemID: r.OrderItemID, AddonID: r.AddonID, Qty: r.Qty, Price: r.Price}
}

func (r customerOrderRecord) toDomain() domain.CustomerOrder {
	return domain.CustomerOrder{CustomerID: r.CustomerID, OrderID: r.OrderID}
}
