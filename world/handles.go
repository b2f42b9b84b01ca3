package world

import (
	"fmt"
	"sync"

	"github.com/brentp/intintmap"
	"github.com/dm-vev/rubble/cube"
	"github.com/google/uuid"
)

// Store is a persistent backing store for block-entity handles. Handles
// creates entries on demand and writes them through to the store, so that a
// voxel position resolves to the same handle across restarts.
type Store interface {
	// Put persists the handle of the position passed.
	Put(pos cube.Pos, id uuid.UUID) error
	// All calls f for every handle previously persisted.
	All(f func(pos cube.Pos, id uuid.UUID)) error
}

// Handles assigns stable entity handles to voxel positions. Handles are
// created lazily when a position is first resolved, typically as the result
// of a ray hitting the static voxel world. Handles is safe for concurrent
// use.
type Handles struct {
	mu    sync.Mutex
	index *intintmap.Map
	ids   []uuid.UUID
	store Store
}

// NewHandles creates an in-memory Handles registry.
func NewHandles() *Handles {
	return &Handles{index: intintmap.New(1024, 0.6)}
}

// LoadHandles creates a Handles registry backed by the Store passed, filling
// it with all handles the store holds. New handles are written through to
// the store as they are created.
func LoadHandles(store Store) (*Handles, error) {
	h := NewHandles()
	h.store = store
	if err := store.All(func(pos cube.Pos, id uuid.UUID) {
		h.put(pos, id)
	}); err != nil {
		return nil, fmt.Errorf("load handles: %w", err)
	}
	return h, nil
}

// At returns the handle of the voxel position passed, if one was previously
// created for it.
func (h *Handles) At(pos cube.Pos) (uuid.UUID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if slot, ok := h.index.Get(pos.Pack()); ok {
		return h.ids[slot], true
	}
	return uuid.UUID{}, false
}

// GetOrCreate returns the handle of the voxel position passed, creating a
// new one if the position has none yet.
func (h *Handles) GetOrCreate(pos cube.Pos) uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	if slot, ok := h.index.Get(pos.Pack()); ok {
		return h.ids[slot]
	}
	id := uuid.New()
	h.put(pos, id)
	if h.store != nil {
		// Write-through is best-effort: a failing store must not stop ray
		// resolution, the handle simply won't survive a restart.
		_ = h.store.Put(pos, id)
	}
	return id
}

// Len returns the amount of handles currently registered.
func (h *Handles) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ids)
}

func (h *Handles) put(pos cube.Pos, id uuid.UUID) {
	h.index.Put(pos.Pack(), int64(len(h.ids)))
	h.ids = append(h.ids, id)
}
