package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk on fire") }

func TestLoadItems(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		items, err := store.LoadItems(ctx, memstore.New(), store.DefaultKey)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("null payload", func(t *testing.T) {
		kv := memstore.New()
		require.NoError(t, kv.Set(ctx, store.DefaultKey, "null"))
		items, err := store.LoadItems(ctx, kv, store.DefaultKey)
		require.NoError(t, err)
		assert.NotNil(t, items)
	})

	t.Run("unparsable payload", func(t *testing.T) {
		kv := memstore.New()
		require.NoError(t, kv.Set(ctx, store.DefaultKey, `[{"id": 1`))
		items, err := store.LoadItems(ctx, kv, store.DefaultKey)
		assert.ErrorIs(t, err, store.ErrCorrupt)
		assert.Empty(t, items)
	})

	t.Run("read failure", func(t *testing.T) {
		items, err := store.LoadItems(ctx, brokenKV{}, store.DefaultKey)
		assert.Error(t, err)
		assert.Empty(t, items)
	})

	t.Run("extra unit field ignored", func(t *testing.T) {
		kv := memstore.New()
		raw := `[{"id":"1","name":"Flour","quantity":"1","unit":"kg","purchased":true}]`
		require.NoError(t, kv.Set(ctx, store.DefaultKey, raw))
		items, err := store.LoadItems(ctx, kv, store.DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, []model.ShoppingItem{{ID: "1", Name: "Flour", Quantity: "1", Purchased: true}}, items)
	})
}

func TestSaveItems(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()

	require.NoError(t, store.SaveItems(ctx, kv, store.DefaultKey, nil))
	raw, ok, err := kv.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)

	items := []model.ShoppingItem{{ID: "a", Name: "Milk", Quantity: "2"}}
	require.NoError(t, store.SaveItems(ctx, kv, store.DefaultKey, items))
	raw, _, _ = kv.Get(ctx, store.DefaultKey)
	assert.JSONEq(t, `[{"id":"a","name":"Milk","quantity":"2","purchased":false}]`, raw)

	assert.Error(t, store.SaveItems(ctx, brokenKV{}, store.DefaultKey, items))
}
