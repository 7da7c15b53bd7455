package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/organics-storefront/pkg/storage"
	"github.com/angelmondragon/organics-storefront/pkg/storage/storagetest"
)

func TestMemoryStorageContract(t *testing.T) {
	storagetest.Run(t, storage.NewMemoryStorage())
}

func TestFileStorageContract(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	storagetest.Run(t, fs)
	require.NoError(t, fs.Ping(context.Background()))
}

func TestFileStorageSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := storage.NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, first.SetItem(ctx, "cartItems", `[{"productId":"A","quantity":2}]`))

	second, err := storage.NewFileStorage(dir)
	require.NoError(t, err)
	got, err := second.GetItem(ctx, "cartItems")
	require.NoError(t, err)
	require.Equal(t, `[{"productId":"A","quantity":2}]`, got)
}

func TestFileStorageLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, fs.SetItem(context.Background(), "cartItems", "[]"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestFileStorageRequiresDir(t *testing.T) {
	_, err := storage.NewFileStorage("  ")
	require.Error(t, err)
}

func TestFileStorageHonoursCancelledContext(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, fs.SetItem(ctx, "cartItems", "[]"), context.Canceled)
}
