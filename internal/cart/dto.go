package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/money"
)

type LineDTO struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LinePrice  decimal.Decimal `json:"line_price"`
}

// CartDTO is a user's full cart with the running total.
type CartDTO struct {
	Lines []LineDTO       `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func NewCartDTO(lines []models.CartLine) CartDTO {
	dto := CartDTO{Lines: make([]LineDTO, 0, len(lines)), Total: decimal.Zero}
	for i := range lines {
		line := &lines[i]
		entry := LineDTO{
			ID:         line.ID,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			LinePrice:  line.LinePrice,
		}
		if line.MenuItem != nil {
			entry.Title = line.MenuItem.Title
		}
		dto.Lines = append(dto.Lines, entry)
		dto.Total = money.Sum(dto.Total, line.LinePrice)
	}
	return dto
}
