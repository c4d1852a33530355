package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/money"
)

// Repository persists cart lines. Upsert is the only write path for adds so
// concurrent requests for the same (user, item) pair serialize in the
// database, not in Go.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LinesForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	Upsert(ctx context.Context, userID uuid.UUID, item *models.MenuItem, quantity int) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) LinesForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Upsert inserts a new line with the catalog price as the unit price, or
// bumps the quantity of the existing line. The conflicting update recomputes
// line_price from the stored unit_price, so the price snapshotted on first
// add survives later catalog changes.
func (r *repository) Upsert(ctx context.Context, userID uuid.UUID, item *models.MenuItem, quantity int) error {
	line := models.CartLine{
		ID:         uuid.New(),
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		LinePrice:  money.Line(item.Price, quantity),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"line_price": gorm.Expr("cart_lines.unit_price * (cart_lines.quantity + excluded.quantity)"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&line).Error
}

func (r *repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartLine{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
