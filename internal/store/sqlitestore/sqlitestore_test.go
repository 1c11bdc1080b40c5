package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "shoplist.db")

	s, err := Open(path)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "shoppingList")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "shoppingList", "[1]"))
	require.NoError(t, s.Set(ctx, "shoppingList", "[2]"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "shoppingList")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", v)
}
