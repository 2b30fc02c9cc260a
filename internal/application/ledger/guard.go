package ledger

import (
	"context"
	"sync"
)

type stockKey struct {
	baseID      int64
	equipmentID int64
}

type guardSlot struct {
	ch   chan struct{} // capacity 1: holds the key while occupied
	refs int
}

// StockGuard serializes stock-decreasing operations per (base, equipment)
// key. At most one reservation is in flight per key; different keys proceed
// independently. Effective order is key-acquisition order.
type StockGuard struct {
	mu    sync.Mutex
	slots map[stockKey]*guardSlot
}

// NewStockGuard builds an empty guard.
func NewStockGuard() *StockGuard {
	return &StockGuard{slots: make(map[stockKey]*guardSlot)}
}

// Acquire blocks until the key is free or ctx is done. On success it returns
// the release function; callers must invoke it exactly once.
func (g *StockGuard) Acquire(ctx context.Context, baseID, equipmentID int64) (func(), error) {
	key := stockKey{baseID: baseID, equipmentID: equipmentID}

	g.mu.Lock()
	slot, ok := g.slots[key]
	if !ok {
		slot = &guardSlot{ch: make(chan struct{}, 1)}
		g.slots[key] = slot
	}
	slot.refs++
	g.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return func() {
			<-slot.ch
			g.put(key, slot)
		}, nil
	case <-ctx.Done():
		g.put(key, slot)
		return nil, ctx.Err()
	}
}

// put drops one reference and frees the slot once nobody waits on it,
// so the map does not grow with every key ever touched.
func (g *StockGuard) put(key stockKey, slot *guardSlot) {
	g.mu.Lock()
	slot.refs--
	if slot.refs == 0 {
		delete(g.slots, key)
	}
	g.mu.Unlock()
}
