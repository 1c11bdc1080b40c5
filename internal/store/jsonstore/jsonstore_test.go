package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "list.json"))
	_, ok, err := s.Get(context.Background(), "shoppingList")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "list.json")
	s := New(path)

	require.NoError(t, s.Set(ctx, "shoppingList", `[{"id":"1"}]`))
	require.NoError(t, s.Set(ctx, "myShoppingList", `[]`))

	v, ok, err := s.Get(ctx, "shoppingList")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	// A second handle on the same file sees both slots.
	other := New(path)
	v, ok, err = other.Get(ctx, "myShoppingList")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	s := New(path)

	_, _, err := s.Get(ctx, "shoppingList")
	assert.Error(t, err)

	// Writes recover the file.
	require.NoError(t, s.Set(ctx, "shoppingList", "[]"))
	v, ok, err := s.Get(ctx, "shoppingList")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestStore_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	s := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, New(path).Set(context.Background(), "shoppingList", "[]"))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "shoplist.json", filepath.Base(p))
}
