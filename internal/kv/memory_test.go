package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_Keys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.SetString(ctx, "tag_b", "{}"))
	require.NoError(t, store.SetString(ctx, "tag_all_ids", "[]"))
	require.NoError(t, store.SetString(ctx, "tag_a", "{}"))

	assert.Equal(t, []string{"tag_a", "tag_all_ids", "tag_b"}, store.Keys())
}

func TestFailingStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewFailingStore()
	})

	t.Run("should fail only the selected operation and key", func(t *testing.T) {
		// given
		ctx := context.Background()
		store := NewFailingStore()
		store.FailOn = FailKey(OpSet, "bad")

		// when
		errBad := store.SetString(ctx, "bad", "v")
		errGood := store.SetString(ctx, "good", "v")

		// then
		assert.ErrorIs(t, errBad, ErrInjected)
		assert.NoError(t, errGood)
		_, ok, _ := store.GetString(ctx, "bad")
		assert.False(t, ok)
	})

	t.Run("should fail every read", func(t *testing.T) {
		// given
		store := NewFailingStore()
		store.FailOn = FailAlways(OpGet)

		// when
		_, _, err := store.GetString(context.Background(), "anything")

		// then
		assert.ErrorIs(t, err, ErrInjected)
	})
}
