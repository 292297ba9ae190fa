package cart

import (
	"errors"

	"github.com/Baooooooo0/Drinking-App/internal/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Cart is the live, ordered collection of line items for the current
// session. Insertion order is preserved. No two entries share the same
// (name, price, variant) key; a duplicate add merges into the existing
// line. The total is recomputed after every mutation.
type Cart struct {
	items []domain.LineItem
	total float64
}

func NewCart() *Cart {
	return &Cart{items: []domain.LineItem{}}
}

func (c *Cart) indexOf(key domain.ItemKey) int {
	for i := range c.items {
		if c.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// Add puts one more unit of item into the cart. An existing line with the
// same key gains one unit regardless of the incoming quantity field;
// otherwise a copy of item is appended.
func (c *Cart) Add(item domain.LineItem) {
	if idx := c.indexOf(item.Key()); idx >= 0 {
		c.items[idx].Quantity++
	} else {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		c.items = append(c.items, item)
	}
	c.recalculate()
}

// Remove deletes the whole line matching key, whatever its quantity.
// Reports whether anything changed; an absent key is a no-op.
func (c *Cart) Remove(key domain.ItemKey) bool {
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.recalculate()
	return true
}

// Increase adds one unit to the line matching key.
func (c *Cart) Increase(key domain.ItemKey) bool {
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.items[idx].Quantity++
	c.recalculate()
	return true
}

// Decrease removes one unit from the line matching key. A line at quantity
// 1 is left untouched: decreasing never deletes, that takes Remove.
func (c *Cart) Decrease(key domain.ItemKey) bool {
	idx := c.indexOf(key)
	if idx < 0 || c.items[idx].Quantity <= 1 {
		return false
	}
	c.items[idx].Quantity--
	c.recalculate()
	return true
}

// SetQuantity replaces the quantity of the line matching key. Quantities
// below 1 are rejected rather than stored. An absent key is a no-op.
func (c *Cart) SetQuantity(key domain.ItemKey, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}
	idx := c.indexOf(key)
	if idx < 0 {
		return false, nil
	}
	c.items[idx].Quantity = quantity
	c.recalculate()
	return true, nil
}

// Clear empties the cart without touching purchase history.
func (c *Cart) Clear() {
	c.items = []domain.LineItem{}
	c.total = 0
}

// Replace swaps in a restored set of items, e.g. loaded from storage.
func (c *Cart) Replace(items []domain.LineItem) {
	c.items = domain.CloneItems(items)
	c.recalculate()
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (c *Cart) Items() []domain.LineItem {
	return domain.CloneItems(c.items)
}

func (c *Cart) Total() float64 {
	return c.total
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) recalculate() {
	c.total = domain.TotalOf(c.items)
}
