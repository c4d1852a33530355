package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
	"github.com/littlelemonco/littlelemon-backend/pkg/pagination"
)

type OrderItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LinePrice  decimal.Decimal `json:"line_price"`
}

type OrderDTO struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	Status         enums.OrderStatus `json:"status"`
	Date           time.Time         `json:"date"`
	Total          decimal.Decimal   `json:"total"`
	DeliveryCrewID *uuid.UUID        `json:"delivery_crew_id,omitempty"`
	Items          []OrderItemDTO    `json:"items"`
	CreatedAt      time.Time         `json:"created_at"`
}

func NewOrderDTO(order *models.Order) OrderDTO {
	if order == nil {
		return OrderDTO{}
	}
	dto := OrderDTO{
		ID:             order.ID,
		UserID:         order.UserID,
		Status:         order.Status,
		Date:           order.Date,
		Total:          order.Total,
		DeliveryCrewID: order.DeliveryCrewID,
		Items:          make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:      order.CreatedAt,
	}
	for i := range order.Items {
		item := &order.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			LinePrice:  item.LinePrice,
		})
	}
	return dto
}

// ListFilter is the repository-level scope for order listings; the service
// derives it from the actor's roles.
type ListFilter struct {
	UserID *uuid.UUID
	CrewID *uuid.UUID
	Status *enums.OrderStatus
	Page   pagination.Params
}

// UpdateInput is a partial order update. Nil fields stay untouched.
type UpdateInput struct {
	Status         *enums.OrderStatus
	DeliveryCrewID *uuid.UUID
}

type ListResult struct {
	Items []OrderDTO
	Total int64
}
