package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/pkg/db"
	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
	"github.com/littlelemonco/littlelemon-backend/pkg/money"
	"github.com/littlelemonco/littlelemon-backend/pkg/pagination"
)

type CreateCategoryInput struct {
	Slug  string
	Title string
}

type CreateMenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID uuid.UUID
}

// UpdateCategoryInput carries a partial update; nil fields are untouched.
type UpdateCategoryInput struct {
	Slug  *string
	Title *string
}

// UpdateMenuItemInput carries a partial update; nil fields are untouched.
type UpdateMenuItemInput struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *uuid.UUID
}

type ListResult[T any] struct {
	Items []T
	Total int64
}

// Service exposes the menu catalog. Reads are public; writes are manager-only
// and enforced at the transport layer.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error)
	ListCategories(ctx context.Context, page pagination.Params) (ListResult[CategoryDTO], error)
	GetCategory(ctx context.Context, id uuid.UUID) (CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (MenuItemDTO, error)
	ListMenuItems(ctx context.Context, filter MenuItemFilter) (ListResult[MenuItemDTO], error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (MenuItemDTO, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (MenuItemDTO, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error) {
	slug := strings.TrimSpace(strings.ToLower(input.Slug))
	title := strings.TrimSpace(input.Title)
	if slug == "" || title == "" {
		return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug and title are required")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{Slug: slug, Title: title})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create category")
	}
	return NewCategoryDTO(category), nil
}

func (s *service) ListCategories(ctx context.Context, page pagination.Params) (ListResult[CategoryDTO], error) {
	categories, total, err := s.repo.ListCategories(ctx, page)
	if err != nil {
		return ListResult[CategoryDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, NewCategoryDTO(&categories[i]))
	}
	return ListResult[CategoryDTO]{Items: dtos, Total: total}, nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (CategoryDTO, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load category")
	}
	return NewCategoryDTO(category), nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (CategoryDTO, error) {
	fields := map[string]any{}
	if input.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*input.Slug))
		if slug == "" {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be empty")
		}
		fields["slug"] = slug
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		fields["title"] = title
	}
	if len(fields) == 0 {
		return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	category, err := s.repo.UpdateCategory(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if db.IsUniqueViolation(err, "") {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update category")
	}
	return NewCategoryDTO(category), nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "category still has menu items")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete category")
	}
	return nil
}

func (s *service) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (MenuItemDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := money.ValidatePrice(input.Price); err != nil {
		return MenuItemDTO{}, err
	}
	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return MenuItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load category")
	}

	item, err := s.repo.CreateMenuItem(ctx, &models.MenuItem{
		Title:      title,
		Price:      input.Price,
		Featured:   input.Featured,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return MenuItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create menu item")
	}
	return NewMenuItemDTO(item), nil
}

func (s *service) ListMenuItems(ctx context.Context, filter MenuItemFilter) (ListResult[MenuItemDTO], error) {
	items, total, err := s.repo.ListMenuItems(ctx, filter)
	if err != nil {
		return ListResult[MenuItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list menu items")
	}
	dtos := make([]MenuItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, NewMenuItemDTO(&items[i]))
	}
	return ListResult[MenuItemDTO]{Items: dtos, Total: total}, nil
}

func (s *service) GetMenuItem(ctx context.Context, id uuid.UUID) (MenuItemDTO, error) {
	item, err := s.repo.FindMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return MenuItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load menu item")
	}
	return NewMenuItemDTO(item), nil
}

func (s *service) UpdateMenuItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (MenuItemDTO, error) {
	fields := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		fields["title"] = title
	}
	if input.Price != nil {
		if err := money.ValidatePrice(*input.Price); err != nil {
			return MenuItemDTO{}, err
		}
		fields["price"] = *input.Price
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}
	if input.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
			}
			return MenuItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load category")
		}
		fields["category_id"] = *input.CategoryID
	}
	if len(fields) == 0 {
		return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	item, err := s.repo.UpdateMenuItem(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MenuItemDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return MenuItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update menu item")
	}
	return NewMenuItemDTO(item), nil
}

func (s *service) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete menu item")
	}
	return nil
}
