package domain

// OrderTimeLayout is the human readable order time, day/month/year hour:minute.
const OrderTimeLayout = "02/01/2006 15:04"

// Order is an immutable snapshot of a cart taken at checkout. The live cart
// can keep changing afterwards without affecting a committed order.
type Order struct {
	Items    []LineItem `json:"items"`
	Total    float64    `json:"total"`
	PlacedAt string     `json:"placed_at"`
}

// NewOrder snapshots items into an order placed at the given time.
func NewOrder(items []LineItem, placedAt string) Order {
	snap := CloneItems(items)
	return Order{
		Items:    snap,
		Total:    TotalOf(snap),
		PlacedAt: placedAt,
	}
}
