package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a frozen copy of the cart line it was derived from at checkout.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_order_items_order_item"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null;uniqueIndex:idx_order_items_order_item"`
	Quantity   int             `gorm:"column:quantity;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(6,2);not null"`
	LinePrice  decimal.Decimal `gorm:"column:line_price;type:numeric(8,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
