package sqlkv

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/organics-storefront/pkg/db/models"
	"github.com/angelmondragon/organics-storefront/pkg/storage/storagetest"
)

func setupStorageTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StorageEntry{}))
	return db
}

func TestStorageContract(t *testing.T) {
	s, err := New(setupStorageTestDB(t))
	require.NoError(t, err)
	storagetest.Run(t, s)
	require.NoError(t, s.Ping(context.Background()))
}

func TestSetItemKeepsSingleRow(t *testing.T) {
	db := setupStorageTestDB(t)
	s, err := New(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SetItem(ctx, "cartItems", "[1]"))
	require.NoError(t, s.SetItem(ctx, "cartItems", "[2]"))

	var count int64
	require.NoError(t, db.Model(&models.StorageEntry{}).Where("storage_key = ?", "cartItems").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestNewRequiresDB(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}
