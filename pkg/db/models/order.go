package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is an immutable checkout snapshot keyed by (owner, order id).
// Items and Shipping are opaque JSON blobs deserialized on every read; only
// Status is ever updated after creation.
type OrderRecord struct {
	UserID    string          `gorm:"column:user_id;primaryKey"`
	OrderID   string          `gorm:"column:order_id;primaryKey"`
	UserName  string          `gorm:"column:user_name;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
	TimeOfDay string          `gorm:"column:time_of_day;not null"`
	Items     string          `gorm:"column:items;type:text;not null"`
	Shipping  string          `gorm:"column:shipping;type:text;not null"`
	Status    string          `gorm:"column:status;not null;default:'pending'"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
}

// TableName pins the table name used by the order store.
func (OrderRecord) TableName() string {
	return "bakeria_orders"
}
