package cart

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
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	menuItems := `
CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  featured INTEGER NOT NULL DEFAULT 0,
  category_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartLines := `
CREATE TABLE IF NOT EXISTS cart_lines (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  menu_item_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, menu_item_id)
);`
	require.NoError(t, gdb.Exec(menuItems).Error)
	require.NoError(t, gdb.Exec(cartLines).Error)
	return gdb
}

func seedItem(t *testing.T, gdb *gorm.DB, price string) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		ID:         uuid.New(),
		Title:      "Greek Salad",
		Price:      decimal.RequireFromString(price),
		CategoryID: uuid.New(),
	}
	require.NoError(t, gdb.Create(item).Error)
	return item
}

func TestUpsertInsertsWithPriceSnapshot(t *testing.T) {
	gdb := setupCartTestDB(t)
	repo := NewRepository(gdb)
	item := seedItem(t, gdb, "12.50")
	userID := uuid.New()

	require.NoError(t, repo.Upsert(context.Background(), userID, item, 2))

	lines, err := repo.LinesForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, lines[0].LinePrice.Equal(decimal.RequireFromString("25.00")))
}

func TestUpsertIncrementsExistingLine(t *testing.T) {
	gdb := setupCartTestDB(t)
	repo := NewRepository(gdb)
	item := seedItem(t, gdb, "10.00")
	userID := uuid.New()

	require.NoError(t, repo.Upsert(context.Background(), userID, item, 1))
	require.NoError(t, repo.Upsert(context.Background(), userID, item, 3))

	lines, err := repo.LinesForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.True(t, lines[0].LinePrice.Equal(decimal.RequireFromString("40.00")))
}

func TestUpsertKeepsUnitPriceAfterCatalogChange(t *testing.T) {
	gdb := setupCartTestDB(t)
	repo := NewRepository(gdb)
	item := seedItem(t, gdb, "10.00")
	userID := uuid.New()

	require.NoError(t, repo.Upsert(context.Background(), userID, item, 1))

	// Catalog price moves; the re-add still carries the stored snapshot.
	item.Price = decimal.RequireFromString("15.00")
	require.NoError(t, gdb.Model(&models.MenuItem{}).Where("id = ?", item.ID).Update("price", item.Price).Error)
	require.NoError(t, repo.Upsert(context.Background(), userID, item, 1))

	lines, err := repo.LinesForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, lines[0].LinePrice.Equal(decimal.RequireFromString("20.00")))
}

func TestUpsertKeepsUsersSeparate(t *testing.T) {
	gdb := setupCartTestDB(t)
	repo := NewRepository(gdb)
	item := seedItem(t, gdb, "8.00")
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, repo.Upsert(context.Background(), first, item, 1))
	require.NoError(t, repo.Upsert(context.Background(), second, item, 5))

	lines, err := repo.LinesForUser(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestDeleteAllForUserIsIdempotent(t *testing.T) {
	gdb := setupCartTestDB(t)
	repo := NewRepository(gdb)
	item := seedItem(t, gdb, "8.00")
	userID := uuid.New()

	require.NoError(t, repo.Upsert(context.Background(), userID, item, 1))

	deleted, err := repo.DeleteAllForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	deleted, err = repo.DeleteAllForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
