package shopping

import (
	"strings"

	"github.com/idilsaglam/shoplist/internal/model"
)

// Items is the ordered shopping list. Transitions below never modify their
// input; each returns a fresh slice and whether anything changed.
type Items []model.ShoppingItem

func (it Items) clone() Items {
	out := make(Items, len(it))
	copy(out, it)
	return out
}

func (it Items) index(id string) int {
	for i := range it {
		if it[i].ID == id {
			return i
		}
	}
	return -1
}

// ReplaceAll returns a copy of items. No validation; nil becomes empty.
func ReplaceAll(items []model.ShoppingItem) Items {
	return Items(items).clone()
}

// Add appends a fresh unpurchased item. It declines on an empty name,
// an empty id or an id already present.
func Add(items Items, id, name, quantity string) (Items, bool) {
	name = strings.TrimSpace(name)
	if name == "" || id == "" || items.index(id) >= 0 {
		return items, false
	}
	out := make(Items, len(items), len(items)+1)
	copy(out, items)
	out = append(out, model.ShoppingItem{
		ID:       id,
		Name:     name,
		Quantity: strings.TrimSpace(quantity),
	})
	return out, true
}

// Edit updates name and quantity in place.
func Edit(items Items, id, name, quantity string) (Items, bool) {
	name = strings.TrimSpace(name)
	i := items.index(id)
	if i < 0 || name == "" {
		return items, false
	}
	out := items.clone()
	out[i].Name = name
	out[i].Quantity = strings.TrimSpace(quantity)
	return out, true
}

func Delete(items Items, id string) (Items, bool) {
	i := items.index(id)
	if i < 0 {
		return items, false
	}
	out := make(Items, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	return out, true
}

func TogglePurchased(items Items, id string) (Items, bool) {
	i := items.index(id)
	if i < 0 {
		return items, false
	}
	out := items.clone()
	out[i].Purchased = !out[i].Purchased
	return out, true
}

// ClearPurchased drops every purchased item, keeping the rest in order.
func ClearPurchased(items Items) (Items, bool) {
	out := make(Items, 0, len(items))
	for _, it := range items {
		if !it.Purchased {
			out = append(out, it)
		}
	}
	if len(out) == len(items) {
		return items, false
	}
	return out, true
}

func Find(items Items, id string) (model.ShoppingItem, bool) {
	i := items.index(id)
	if i < 0 {
		return model.ShoppingItem{}, false
	}
	return items[i], true
}

// Stats counts purchased and still-to-buy items.
func Stats(items Items) (purchased, pending int) {
	for _, it := range items {
		if it.Purchased {
			purchased++
		} else {
			pending++
		}
	}
	return
}
