package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/pagination"
)

// MenuItemFilter narrows a menu item listing. Zero values mean "no filter".
type MenuItemFilter struct {
	CategorySlug string
	Featured     *bool
	TitleSearch  string
	PriceOrder   string // "asc", "desc", or "" for recency ordering
	Page         pagination.Params
}

// Repository persists the menu catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	ListCategories(ctx context.Context, page pagination.Params) ([]models.Category, int64, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, int64, error)
	FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
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

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) ListCategories(ctx context.Context, page pagination.Params) ([]models.Category, int64, error) {
	page = page.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Category, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindCategoryByID(ctx, id)
}

func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return r.FindMenuItemByID(ctx, item.ID)
}

func (r *repository) ListMenuItems(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, int64, error) {
	page := filter.Page.Normalize()

	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Featured != nil {
		query = query.Where("menu_items.featured = ?", *filter.Featured)
	}
	if filter.TitleSearch != "" {
		query = query.Where("menu_items.title LIKE ?", "%"+filter.TitleSearch+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.PriceOrder {
	case "asc":
		query = query.Order("menu_items.price ASC")
	case "desc":
		query = query.Order("menu_items.price DESC")
	default:
		query = query.Order("menu_items.created_at DESC")
	}

	var items []models.MenuItem
	err := query.
		Preload("Category").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateMenuItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.MenuItem, error) {
	result := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindMenuItemByID(ctx, id)
}

func (r *repository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
