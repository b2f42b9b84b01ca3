package world

import (
	"errors"
	"testing"

	"github.com/dm-vev/rubble/cube"
	"github.com/google/uuid"
)

// memStore is a Store keeping handles in a map.
type memStore struct {
	entries map[cube.Pos]uuid.UUID
	puts    int
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{entries: map[cube.Pos]uuid.UUID{}}
}

func (s *memStore) Put(pos cube.Pos, id uuid.UUID) error {
	s.entries[pos] = id
	s.puts++
	return nil
}

func (s *memStore) All(f func(pos cube.Pos, id uuid.UUID)) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	for pos, id := range s.entries {
		f(pos, id)
	}
	return nil
}

func TestHandlesGetOrCreateStable(t *testing.T) {
	h := NewHandles()
	pos := cube.Pos{1, 2, 3}

	id := h.GetOrCreate(pos)
	if id == uuid.Nil {
		t.Fatalf("GetOrCreate() returned the zero handle")
	}
	if again := h.GetOrCreate(pos); again != id {
		t.Fatalf("GetOrCreate() not stable: %v then %v", id, again)
	}
	if other := h.GetOrCreate(cube.Pos{1, 2, 4}); other == id {
		t.Fatalf("distinct positions share handle %v", id)
	}
	if n := h.Len(); n != 2 {
		t.Fatalf("Len() = %v, want 2", n)
	}
}

func TestHandlesAt(t *testing.T) {
	h := NewHandles()
	pos := cube.Pos{-10, 0, 10}

	if _, ok := h.At(pos); ok {
		t.Fatalf("At() found a handle before creation")
	}
	id := h.GetOrCreate(pos)
	got, ok := h.At(pos)
	if !ok || got != id {
		t.Fatalf("At() = %v, %v, want %v, true", got, ok, id)
	}
}

func TestHandlesWriteThrough(t *testing.T) {
	store := newMemStore()
	h, err := LoadHandles(store)
	if err != nil {
		t.Fatalf("LoadHandles() = %v", err)
	}

	pos := cube.Pos{5, 64, -5}
	id := h.GetOrCreate(pos)
	h.GetOrCreate(pos)
	if store.puts != 1 {
		t.Fatalf("store received %v puts, want 1", store.puts)
	}

	reloaded, err := LoadHandles(store)
	if err != nil {
		t.Fatalf("LoadHandles() after write = %v", err)
	}
	if got := reloaded.GetOrCreate(pos); got != id {
		t.Fatalf("handle not stable across reload: %v then %v", id, got)
	}
	if n := reloaded.Len(); n != 1 {
		t.Fatalf("Len() = %v after reload, want 1", n)
	}
}

func TestLoadHandlesError(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("disk gone")
	if _, err := LoadHandles(store); err == nil {
		t.Fatalf("LoadHandles() = nil error, want failure")
	}
}
