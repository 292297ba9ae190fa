package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Baooooooo0/Drinking-App/internal/domain"
	"github.com/Baooooooo0/Drinking-App/internal/storage"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Manager owns the live cart and the purchase history for the session and
// writes both through the persistence gateway after every mutation.
//
// In-memory state is the source of truth for the session: a failed write on
// an ordinary mutation is logged and swallowed. Checkout is the exception,
// the cart is only emptied once the history write has succeeded.
type Manager struct {
	mu         sync.Mutex
	gateway    storage.Gateway
	cart       *Cart
	orders     []domain.Order
	timestamps []string
	now        func() time.Time
}

func NewManager(gateway storage.Gateway) *Manager {
	return &Manager{
		gateway:    gateway,
		cart:       NewCart(),
		orders:     []domain.Order{},
		timestamps: []string{},
		now:        time.Now,
	}
}

// Restore loads the cart and the purchase history from the gateway. An
// absent slot means no prior data; a broken or unreachable store leaves the
// manager empty rather than failing startup.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []domain.LineItem
	if loadSlot(ctx, m.gateway, storage.SlotCartItems, &items) {
		m.cart.Replace(items)
	}

	var lines [][]domain.LineItem
	var stamps []string
	loadSlot(ctx, m.gateway, storage.SlotPurchaseHistory, &lines)
	loadSlot(ctx, m.gateway, storage.SlotPurchaseTimestamps, &stamps)

	// The two collections are index aligned; truncate to the shorter one
	// if a partial write ever left them out of step.
	if len(lines) != len(stamps) {
		log.Printf("history slots out of step (%d orders, %d timestamps), truncating", len(lines), len(stamps))
		n := min(len(lines), len(stamps))
		lines = lines[:n]
		stamps = stamps[:n]
	}

	m.orders = make([]domain.Order, 0, len(lines))
	m.timestamps = make([]string, 0, len(stamps))
	for i, line := range lines {
		m.orders = append(m.orders, domain.NewOrder(line, stamps[i]))
		m.timestamps = append(m.timestamps, stamps[i])
	}
}

// AddItem puts one unit of item into the cart and writes the cart through.
func (m *Manager) AddItem(ctx context.Context, item domain.LineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.Add(item)
	m.persistCart(ctx)
}

// RemoveItem deletes the whole matching line. Absent lines are a no-op.
func (m *Manager) RemoveItem(ctx context.Context, key domain.ItemKey) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.Remove(key) {
		m.persistCart(ctx)
	}
}

// IncreaseQuantity adds one unit to the matching line. Absent lines are a no-op.
func (m *Manager) IncreaseQuantity(ctx context.Context, key domain.ItemKey) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.Increase(key) {
		m.persistCart(ctx)
	}
}

// DecreaseQuantity removes one unit from the matching line, stopping at 1.
func (m *Manager) DecreaseQuantity(ctx context.Context, key domain.ItemKey) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.Decrease(key) {
		m.persistCart(ctx)
	}
}

// SetQuantity replaces the quantity of the matching line. Quantities below
// 1 are rejected with ErrInvalidQuantity.
func (m *Manager) SetQuantity(ctx context.Context, key domain.ItemKey, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed, err := m.cart.SetQuantity(key, quantity)
	if err != nil {
		return err
	}
	if changed {
		m.persistCart(ctx)
	}
	return nil
}

// Checkout snapshots the cart into a timestamped order, appends it to the
// purchase history and persists the history. Only after that write succeeds
// is the in-memory cart emptied. An empty cart returns ErrEmptyCart and
// leaves history untouched.
func (m *Manager) Checkout(ctx context.Context) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	order := domain.NewOrder(m.cart.Items(), m.now().Format(domain.OrderTimeLayout))

	orders := append(append([]domain.Order{}, m.orders...), order)
	timestamps := append(append([]string{}, m.timestamps...), order.PlacedAt)

	if err := m.persistHistory(ctx, orders, timestamps); err != nil {
		return nil, fmt.Errorf("persist purchase history: %w", err)
	}

	m.orders = orders
	m.timestamps = timestamps
	m.cart.Clear()
	m.persistCart(ctx)

	return &order, nil
}

// ClearHistory wipes the purchase history and its timestamps together and
// persists the now-empty collections.
func (m *Manager) ClearHistory(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persistHistory(ctx, []domain.Order{}, []string{}); err != nil {
		return fmt.Errorf("persist purchase history: %w", err)
	}

	m.orders = []domain.Order{}
	m.timestamps = []string{}
	return nil
}

// Items returns a snapshot of the live cart lines.
func (m *Manager) Items() []domain.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Items()
}

// Total returns the current cart total.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Total()
}

// History returns a snapshot of the committed orders, oldest first.
func (m *Manager) History() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Order, len(m.orders))
	for i, o := range m.orders {
		out[i] = domain.NewOrder(o.Items, o.PlacedAt)
	}
	return out
}

// persistCart writes the cart slot through. Failures are logged, not
// surfaced: the in-memory cart stays authoritative for the session.
func (m *Manager) persistCart(ctx context.Context) {
	data, err := json.Marshal(m.cart.Items())
	if err != nil {
		log.Printf("marshal cart failed: %v", err)
		return
	}
	if err := m.gateway.Save(ctx, storage.SlotCartItems, data); err != nil {
		log.Printf("save cart failed: %v", err)
	}
}

func (m *Manager) persistHistory(ctx context.Context, orders []domain.Order, timestamps []string) error {
	lines := make([][]domain.LineItem, len(orders))
	for i, o := range orders {
		lines[i] = o.Items
	}

	historyJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal history failed: %w", err)
	}
	timestampsJSON, err := json.Marshal(timestamps)
	if err != nil {
		return fmt.Errorf("marshal timestamps failed: %w", err)
	}

	if err := m.gateway.Save(ctx, storage.SlotPurchaseHistory, historyJSON); err != nil {
		return fmt.Errorf("save history failed: %w", err)
	}
	if err := m.gateway.Save(ctx, storage.SlotPurchaseTimestamps, timestampsJSON); err != nil {
		return fmt.Errorf("save timestamps failed: %w", err)
	}
	return nil
}

// loadSlot decodes one slot into out, reporting whether data was present.
func loadSlot[T any](ctx context.Context, gateway storage.Gateway, slot storage.Slot, out *T) bool {
	data, err := gateway.Load(ctx, slot)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return false
	}
	if err != nil {
		log.Printf("load slot %q failed: %v", slot, err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("decode slot %q failed: %v", slot, err)
		return false
	}
	return true
}
