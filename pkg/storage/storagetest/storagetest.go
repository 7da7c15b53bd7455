// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/organics-storefront/pkg/storage"
)

// Run exercises s against the local-storage contract. The backend must start
// empty for the keys used here.
func Run(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.GetItem(ctx, "absent")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.SetItem(ctx, "cartItems", `[{"productId":"A"}]`))
		got, err := s.GetItem(ctx, "cartItems")
		require.NoError(t, err)
		require.Equal(t, `[{"productId":"A"}]`, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.SetItem(ctx, "cartItems", `[]`))
		got, err := s.GetItem(ctx, "cartItems")
		require.NoError(t, err)
		require.Equal(t, `[]`, got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.SetItem(ctx, "theme", "dark"))
		got, err := s.GetItem(ctx, "cartItems")
		require.NoError(t, err)
		require.Equal(t, `[]`, got)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.RemoveItem(ctx, "cartItems"))
		_, err := s.GetItem(ctx, "cartItems")
		require.ErrorIs(t, err, storage.ErrNotFound)

		got, err := s.GetItem(ctx, "theme")
		require.NoError(t, err)
		require.Equal(t, "dark", got)
	})

	t.Run("remove missing is not an error", func(t *testing.T) {
		require.NoError(t, s.RemoveItem(ctx, "never-written"))
	})
}
