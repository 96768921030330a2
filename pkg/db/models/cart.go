package models

import "time"

// CartRecord is the single row a cart owner holds. Items is the whole cart
// serialized as an opaque JSON blob; replacing it replaces the cart.
type CartRecord struct {
	OwnerID   string    `gorm:"column:owner_id;primaryKey"`
	Items     string    `gorm:"column:items;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name used by the cart store.
func (CartRecord) TableName() string {
	return "bakeria_carts"
}
