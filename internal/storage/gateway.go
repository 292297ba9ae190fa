package storage

import (
	"context"
	"errors"
)

// Slot addresses one durable value in the gateway.
type Slot string

// Slots the cart manager writes through.
const (
	SlotCartItems          Slot = "cart_items"
	SlotPurchaseHistory    Slot = "purchase_history"
	SlotPurchaseTimestamps Slot = "purchase_timestamps"
)

var ErrSlotNotFound = errors.New("slot not found")

// Gateway is the durability surface for cart state and purchase history.
// It carries no business logic: raw bytes in, raw bytes out, keyed by slot.
// Load returns ErrSlotNotFound for a slot that was never saved; callers
// treat that as "no prior data", not as a failure.
type Gateway interface {
	Save(ctx context.Context, slot Slot, value []byte) error
	Load(ctx context.Context, slot Slot) ([]byte, error)
	Close() error
}
