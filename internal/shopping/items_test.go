package shopping

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/model"
)

func sample() Items {
	return Items{
		{ID: "1", Name: "Milk", Quantity: "2"},
		{ID: "2", Name: "Bread", Quantity: "1", Purchased: true},
		{ID: "3", Name: "Eggs", Quantity: "12"},
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		itemName string
		quantity string
		wantOK   bool
		want     Items
	}{
		{
			name: "appends trimmed unpurchased item", id: "4", itemName: "  Apples ", quantity: " 6 ",
			wantOK: true,
			want:   append(sample(), model.ShoppingItem{ID: "4", Name: "Apples", Quantity: "6"}),
		},
		{name: "empty name declined", id: "4", itemName: "", quantity: "1", want: sample()},
		{name: "blank name declined", id: "4", itemName: "   ", quantity: "1", want: sample()},
		{name: "empty id declined", id: "", itemName: "Apples", quantity: "1", want: sample()},
		{name: "duplicate id declined", id: "2", itemName: "Apples", quantity: "1", want: sample()},
		{
			name: "empty quantity allowed", id: "4", itemName: "Salt", quantity: "",
			wantOK: true,
			want:   append(sample(), model.ShoppingItem{ID: "4", Name: "Salt"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Add(sample(), tt.id, tt.itemName, tt.quantity)
			assert.Equal(t, tt.wantOK, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Add() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdd_DoesNotAliasInput(t *testing.T) {
	in := make(Items, 1, 8)
	in[0] = model.ShoppingItem{ID: "1", Name: "Milk"}

	a, ok := Add(in, "2", "Bread", "")
	require.True(t, ok)
	b, ok := Add(in, "3", "Eggs", "")
	require.True(t, ok)

	assert.Equal(t, "2", a[1].ID)
	assert.Equal(t, "3", b[1].ID)
	assert.Len(t, in, 1)
}

func TestEdit(t *testing.T) {
	got, ok := Edit(sample(), "2", "Rye bread", "2")
	require.True(t, ok)
	want := sample()
	want[1].Name, want[1].Quantity = "Rye bread", "2"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Edit() mismatch (-want +got):\n%s", diff)
	}

	t.Run("unknown id leaves list unchanged", func(t *testing.T) {
		got, ok := Edit(sample(), "nope", "x", "1")
		assert.False(t, ok)
		assert.Equal(t, sample(), got)
	})

	t.Run("empty name declined", func(t *testing.T) {
		got, ok := Edit(sample(), "1", " ", "1")
		assert.False(t, ok)
		assert.Equal(t, sample(), got)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := sample()
		_, _ = Edit(in, "1", "Oat milk", "1")
		assert.Equal(t, "Milk", in[0].Name)
	})
}

func TestDelete(t *testing.T) {
	got, ok := Delete(sample(), "2")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "3"}, ids(got))

	again, ok := Delete(got, "2")
	assert.False(t, ok)
	assert.Equal(t, got, again)
}

func TestTogglePurchased(t *testing.T) {
	once, ok := TogglePurchased(sample(), "1")
	require.True(t, ok)
	assert.True(t, once[0].Purchased)

	twice, ok := TogglePurchased(once, "1")
	require.True(t, ok)
	assert.Equal(t, sample(), twice)

	_, ok = TogglePurchased(sample(), "nope")
	assert.False(t, ok)
}

func TestClearPurchased(t *testing.T) {
	got, ok := ClearPurchased(sample())
	require.True(t, ok)
	assert.Equal(t, []string{"1", "3"}, ids(got))

	_, ok = ClearPurchased(got)
	assert.False(t, ok)
}

func TestReplaceAll(t *testing.T) {
	assert.Empty(t, ReplaceAll(nil))
	assert.NotNil(t, ReplaceAll(nil))
	assert.Empty(t, ReplaceAll([]model.ShoppingItem{}))
	assert.Equal(t, sample(), ReplaceAll(sample()))
}

func TestStats(t *testing.T) {
	p, n := Stats(sample())
	assert.Equal(t, 1, p)
	assert.Equal(t, 2, n)
}

// Random operation sequences must never produce duplicate ids and must
// keep the relative order of surviving items.
func TestRandomSequences_KeepIDsUniqueAndOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	gen := &SequenceGenerator{Prefix: "id-"}

	for round := 0; round < 50; round++ {
		items := Items{}
		for step := 0; step < 200; step++ {
			var ref string
			if len(items) > 0 {
				ref = items[r.Intn(len(items))].ID
			}
			switch r.Intn(4) {
			case 0:
				items, _ = Add(items, gen.NewID(), "item "+strconv.Itoa(step), "1")
			case 1:
				items, _ = Edit(items, ref, "edited", "2")
			case 2:
				items, _ = Delete(items, ref)
			case 3:
				items, _ = TogglePurchased(items, ref)
			}

			seen := map[string]bool{}
			last := 0
			for _, it := range items {
				require.NotEmpty(t, it.ID)
				require.False(t, seen[it.ID], "duplicate id %s", it.ID)
				seen[it.ID] = true
				n, err := strconv.Atoi(it.ID[len("id-"):])
				require.NoError(t, err)
				require.Greater(t, n, last, "order broken")
				last = n
			}
		}
	}
}

func ids(items Items) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
