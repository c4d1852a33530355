package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
)

type menuItemFinder interface {
	FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	Add(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) (CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo    Repository
	catalog menuItemFinder
}

func NewService(repo Repository, catalog menuItemFinder) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	lines, err := s.repo.LinesForUser(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
	}
	return NewCartDTO(lines), nil
}

func (s *service) Add(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) (CartDTO, error) {
	if quantity < 1 {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	item, err := s.catalog.FindMenuItemByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load menu item")
	}
	if err := s.repo.Upsert(ctx, userID, item, quantity); err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to add cart line")
	}
	return s.Get(ctx, userID)
}

// Clear succeeds even when the cart is already empty.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to clear cart")
	}
	return nil
}
