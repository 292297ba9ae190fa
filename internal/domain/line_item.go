package domain

// LineItem is one product entry in a cart or a committed order. Quantity
// stays >= 1 while the line is present; a line never sits at quantity 0.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Variant  string  `json:"variant,omitempty"`
}

// ItemKey identifies "the same cart line". Two items belong to the same
// line only when name, unit price and variant all match.
type ItemKey struct {
	Name    string
	Price   float64
	Variant string
}

func (it LineItem) Key() ItemKey {
	return ItemKey{Name: it.Name, Price: it.Price, Variant: it.Variant}
}

func (it LineItem) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// CloneItems returns an independent copy of items so that later mutations
// to the source never show through a snapshot.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// TotalOf recomputes the total from scratch. Totals are always derived
// this way, never patched incrementally.
func TotalOf(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
