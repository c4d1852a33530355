package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	menuItems := `
CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  featured INTEGER NOT NULL DEFAULT 0,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, gdb.Exec(categories).Error)
	require.NoError(t, gdb.Exec(menuItems).Error)
	return gdb
}

func seedCategory(t *testing.T, repo Repository, slug string) *models.Category {
	t.Helper()
	category, err := repo.CreateCategory(context.Background(), &models.Category{Slug: slug, Title: slug})
	require.NoError(t, err)
	return category
}

func seedMenuItem(t *testing.T, repo Repository, categoryID uuid.UUID, title string, price string) *models.MenuItem {
	t.Helper()
	parsed, err := decimal.NewFromString(price)
	require.NoError(t, err)
	item, err := repo.CreateMenuItem(context.Background(), &models.MenuItem{
		Title:      title,
		Price:      parsed,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return item
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	seedCategory(t, repo, "mains")

	_, err := repo.CreateCategory(context.Background(), &models.Category{Slug: "mains", Title: "Mains Again"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestDeleteCategoryBlockedByMenuItems(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	category := seedCategory(t, repo, "desserts")
	seedMenuItem(t, repo, category.ID, "Lemon Tart", "6.50")

	err := repo.DeleteCategory(context.Background(), category.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")

	// Once the referencing item is gone the delete goes through.
	items, _, err := repo.ListMenuItems(context.Background(), MenuItemFilter{CategorySlug: "desserts"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, repo.DeleteMenuItem(context.Background(), items[0].ID))
	require.NoError(t, repo.DeleteCategory(context.Background(), category.ID))
}

func TestListMenuItemsFiltersByCategory(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	mains := seedCategory(t, repo, "mains")
	drinks := seedCategory(t, repo, "drinks")
	seedMenuItem(t, repo, mains.ID, "Greek Salad", "12.00")
	seedMenuItem(t, repo, mains.ID, "Bruschetta", "8.50")
	seedMenuItem(t, repo, drinks.ID, "Lemonade", "3.25")

	items, total, err := repo.ListMenuItems(context.Background(), MenuItemFilter{CategorySlug: "mains"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, mains.ID, item.CategoryID)
		require.NotNil(t, item.Category)
		assert.Equal(t, "mains", item.Category.Slug)
	}
}

func TestListMenuItemsOrdersByPrice(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	mains := seedCategory(t, repo, "mains")
	seedMenuItem(t, repo, mains.ID, "Greek Salad", "12.00")
	seedMenuItem(t, repo, mains.ID, "Bruschetta", "8.50")
	seedMenuItem(t, repo, mains.ID, "Pasta", "15.75")

	items, _, err := repo.ListMenuItems(context.Background(), MenuItemFilter{PriceOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Bruschetta", items[0].Title)
	assert.Equal(t, "Pasta", items[2].Title)

	items, _, err = repo.ListMenuItems(context.Background(), MenuItemFilter{PriceOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Pasta", items[0].Title)
}

func TestListMenuItemsPaginates(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	mains := seedCategory(t, repo, "mains")
	for i := 0; i < 5; i++ {
		seedMenuItem(t, repo, mains.ID, fmt.Sprintf("Dish %d", i), "9.99")
	}

	items, total, err := repo.ListMenuItems(context.Background(), MenuItemFilter{
		PriceOrder: "asc",
		Page:       pagination.Params{Limit: 2, Offset: 2},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 2)
}

func TestUpdateMenuItemPartialFields(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	mains := seedCategory(t, repo, "mains")
	item := seedMenuItem(t, repo, mains.ID, "Greek Salad", "12.00")

	updated, err := repo.UpdateMenuItem(context.Background(), item.ID, map[string]any{
		"price":    decimal.RequireFromString("13.25"),
		"featured": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Greek Salad", updated.Title)
	assert.True(t, updated.Featured)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("13.25")))
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	_, err := repo.UpdateMenuItem(context.Background(), uuid.New(), map[string]any{"featured": true})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
