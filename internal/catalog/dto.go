package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
)

type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCategoryDTO(category *models.Category) CategoryDTO {
	if category == nil {
		return CategoryDTO{}
	}
	return CategoryDTO{
		ID:        category.ID,
		Slug:      category.Slug,
		Title:     category.Title,
		CreatedAt: category.CreatedAt,
	}
}

type MenuItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Featured  bool            `json:"featured"`
	Category  *CategoryDTO    `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewMenuItemDTO(item *models.MenuItem) MenuItemDTO {
	if item == nil {
		return MenuItemDTO{}
	}
	dto := MenuItemDTO{
		ID:        item.ID,
		Title:     item.Title,
		Price:     item.Price,
		Featured:  item.Featured,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Category != nil {
		category := NewCategoryDTO(item.Category)
		dto.Category = &category
	}
	return dto
}
