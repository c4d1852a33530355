package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
)

// Order is the immutable snapshot produced by checkout. Total is frozen at
// creation; later catalog price changes never touch it.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'out_for_delivery'"`
	Date           time.Time         `gorm:"column:date;not null;index"`
	Total          decimal.Decimal   `gorm:"column:total;type:numeric(8,2);not null"`
	DeliveryCrewID *uuid.UUID        `gorm:"column:delivery_crew_id;type:uuid;index"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
