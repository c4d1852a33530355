package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a purchasable catalog entry. Price is fixed-point with two
// decimals; cart lines snapshot it at add time.
type MenuItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title      string          `gorm:"column:title;type:text;not null;index"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(6,2);not null;index"`
	Featured   bool            `gorm:"column:featured;not null;default:false;index"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category   *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
