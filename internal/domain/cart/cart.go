package cart

import (
	"github.com/shopspring/decimal"
)

// Item is a single purchasable line in a cart. Two items are the same line
// only when product ID, size and color all match.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// Key returns the composite identity of the item
func (i Item) Key() ItemKey {
	return ItemKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

// ItemKey is the composite identity (product, size, color) of a cart line
type ItemKey struct {
	ProductID string
	Size      string
	Color     string
}

// State is the full cart state. Total and ItemCount are derived from Items
// and recomputed on every mutation; they are never adjusted independently.
type State struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewState returns an empty cart
func NewState() State {
	return State{
		Items:     []Item{},
		Total:     decimal.Zero,
		ItemCount: 0,
	}
}

// AddItem adds one unit of the given item. If a line with the same
// (product, size, color) already exists its quantity is incremented,
// otherwise a new line with quantity 1 is appended.
func (s State) AddItem(item Item) State {
	key := item.Key()
	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	merged := false
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = 1
		items = append(items, item)
	}

	return recompute(items)
}

// RemoveItem deletes every line whose product ID matches, regardless of
// size or color. Removal is intentionally wider than addition: the
// storefront's "remove" control clears all variants of a product.
func (s State) RemoveItem(productID string) State {
	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return recompute(items)
}

// UpdateQuantity sets the quantity of every line matching the product ID.
// Negative quantities clamp to zero and zero-quantity lines are dropped.
func (s State) UpdateQuantity(productID string, quantity int) State {
	if quantity < 0 {
		quantity = 0
	}

	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID == productID {
			item.Quantity = quantity
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	return recompute(items)
}

// Clear resets the cart to its empty state
func (s State) Clear() State {
	return NewState()
}

// IsEmpty reports whether the cart holds no items
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// recompute rebuilds the derived aggregates from the item list
func recompute(items []Item) State {
	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return State{
		Items:     items,
		Total:     total,
		ItemCount: count,
	}
}
