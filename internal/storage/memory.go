package storage

import (
	"context"
	"sync"
)

// MemoryGateway implements Gateway with in-memory storage. Nothing survives
// a restart; it backs tests and ephemeral runs.
type MemoryGateway struct {
	mu    sync.RWMutex
	slots map[Slot][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		slots: make(map[Slot][]byte),
	}
}

func (g *MemoryGateway) Save(_ context.Context, slot Slot, value []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	g.slots[slot] = cp
	return nil
}

func (g *MemoryGateway) Load(_ context.Context, slot Slot) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	value, ok := g.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (g *MemoryGateway) Close() error {
	return nil
}
