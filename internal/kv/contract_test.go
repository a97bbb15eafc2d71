package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behaviour every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("should report a missing key as absent", func(t *testing.T) {
		// given
		store := newStore(t)

		// when
		value, ok, err := store.GetString(context.Background(), "nope")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("should read back what was written", func(t *testing.T) {
		// given
		ctx := context.Background()
		store := newStore(t)

		// when
		require.NoError(t, store.SetString(ctx, "expense_exp1", `{"id":"exp1"}`))
		value, ok, err := store.GetString(ctx, "expense_exp1")

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"id":"exp1"}`, value)
	})

	t.Run("should overwrite an existing key", func(t *testing.T) {
		// given
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.SetString(ctx, "k", "first"))

		// when
		require.NoError(t, store.SetString(ctx, "k", "second"))

		// then
		value, ok, err := store.GetString(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", value)
	})

	t.Run("should keep an empty string distinct from absence", func(t *testing.T) {
		// given
		ctx := context.Background()
		store := newStore(t)

		// when
		require.NoError(t, store.SetString(ctx, "empty", ""))

		// then
		value, ok, err := store.GetString(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", value)
	})

	t.Run("should remove a key and tolerate removing it again", func(t *testing.T) {
		// given
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.SetString(ctx, "k", "v"))

		// when
		require.NoError(t, store.RemoveKey(ctx, "k"))
		require.NoError(t, store.RemoveKey(ctx, "k"))

		// then
		_, ok, err := store.GetString(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
