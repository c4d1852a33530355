package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items. Deleting a category still referenced by menu
// items is rejected by the foreign key constraint.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string    `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Title     string    `gorm:"column:title;type:text;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
