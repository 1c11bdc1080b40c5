package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/idilsaglam/shoplist/internal/model"
)

// DefaultKey is the durable slot the shopping list lives under.
const DefaultKey = "shoppingList"

// ErrCorrupt is returned by LoadItems when the slot holds something that
// is not a JSON array of items. The returned slice is still usable (empty).
var ErrCorrupt = errors.New("corrupt shopping list")

// KV is a string key-value slot store. Backends: jsonstore, sqlitestore, memstore.
type KV interface {
	// Get returns ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// LoadItems reads and decodes the collection stored under key.
// A missing key is not an error; it yields an empty list.
func LoadItems(ctx context.Context, kv KV, key string) ([]model.ShoppingItem, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return []model.ShoppingItem{}, fmt.Errorf("get %q: %w", key, err)
	}
	if !ok || raw == "" {
		return []model.ShoppingItem{}, nil
	}
	var items []model.ShoppingItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []model.ShoppingItem{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	return items, nil
}

// SaveItems encodes the full collection and writes it under key.
func SaveItems(ctx context.Context, kv KV, key string, items []model.ShoppingItem) error {
	if items == nil {
		items = []model.ShoppingItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
