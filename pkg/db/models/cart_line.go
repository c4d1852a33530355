package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one (user, menu item) entry in a mutable cart. UnitPrice is the
// catalog price snapshotted on first add and never refreshed; LinePrice is
// always UnitPrice times Quantity.
type CartLine struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_lines_user_item"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null;uniqueIndex:idx_cart_lines_user_item"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID"`
	Quantity   int             `gorm:"column:quantity;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(6,2);not null"`
	LinePrice  decimal.Decimal `gorm:"column:line_price;type:numeric(8,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
