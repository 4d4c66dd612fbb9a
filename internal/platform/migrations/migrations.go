package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the restaurant schema. Tables are listed parents first so foreign keys resolve.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&foodRecord{},
		&addonRecord{},
		&customerRecord{},
		&orderRecord{},
		&customerOrderRecord{},
		&orderItemRecord{},
		&itemModRecord{},
		&orderIdempotencyRecord{},
	)
}

// Food schema mirrors the restaurant Postgres gateway.
type foodRecord struct {
	ID       int64           `gorm:"primaryKey;column:id"`
	Name     string          `gorm:"column:name;size:100;not null"`
	Category string          `gorm:"column:category;size:50;not null;index"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(7,2);not null"`
	Size     *string         `gorm:"column:size;size:20"`
}

func (foodRecord) TableName() string { return "foods" }

type addonRecord struct {
	ID    int64           `gorm:"primaryKey;column:id"`
	Name  string          `gorm:"column:name;size:100;not null"`
	Type  string          `gorm:"column:type;size:50;not null;index"`
	Price decimal.Decimal `gorm:"column:price;type:numeric(7,2);not null"`
	Size  *string         `gorm:"column:size;size:20"`
}

func (addonRecord) TableName() string { return "addons" }

type customerRecord struct {
	ID         int64   `gorm:"primaryKey;column:id"`
	Name       string  `gorm:"column:name;size:100;not null"`
	Phone      string  `gorm:"column:phone;size:30;not null"`
	Street     *string `gorm:"column:street;size:100"`
	City       *string `gorm:"column:city;size:50"`
	Province   *string `gorm:"column:province;size:50"`
	PostalCode *string `gorm:"column:postal_code;size:10"`
}

func (customerRecord) TableName() string { return "customers" }

type orderRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	Date          time.Time `gorm:"column:date;not null;index"`
	PaymentMethod string    `gorm:"column:payment_method;size:30;not null"`
	Type          string    `gorm:"column:type;size:30;not null"`
}

func (orderRecord) TableName() string { return "orders" }

// Deleting a customer or order that is still linked is refused by the database.
type customerOrderRecord struct {
	CustomerID int64           `gorm:"primaryKey;autoIncrement:false;column:customer_id"`
	OrderID    int64           `gorm:"primaryKey;autoIncrement:false;column:order_id;index"`
	Customer   *customerRecord `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Order      *orderRecord    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (customerOrderRecord) TableName() string { return "customer_orders" }

// food_id carries no constraint: removing a food must not rewrite past orders.
type orderItemRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	OrderID int64           `gorm:"column:order_id;not null;index"`
	FoodID  int64           `gorm:"column:food_id;not null"`
	Price   decimal.Decimal `gorm:"column:price;type:numeric(7,2);not null"`
	Order   *orderRecord    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type itemModRecord struct {
	OrderItemID int64            `gorm:"primaryKey;autoIncrement:false;column:order_item_id"`
	AddonID     int64            `gorm:"primaryKey;autoIncrement:false;column:addon_id"`
	Qty         int32            `gorm:"column:qty;not null;default:1"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(7,2);not null"`
	OrderItem   *orderItemRecord `gorm:"foreignKey:OrderItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (itemModRecord) TableName() string { return "item_mods" }

// Keys outlive the orders they placed, so order_id carries no foreign key.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
