package model

// ShoppingItem is one line on the shopping list.
// Quantity is free-form text ("2", "500g", "a few"), never parsed.
type ShoppingItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Purchased bool   `json:"purchased"`
}
