package handledb

import (
	"testing"

	"github.com/dm-vev/rubble/cube"
	"github.com/google/uuid"
)

func TestDBRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}

	want := map[cube.Pos]uuid.UUID{
		{0, 0, 0}:       uuid.New(),
		{1, 2, 3}:       uuid.New(),
		{-100, -64, 50}: uuid.New(),
	}
	for pos, id := range want {
		if err := db.Put(pos, id); err != nil {
			t.Fatalf("Put(%v) = %v", pos, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("Open() after close = %v", err)
	}
	defer db.Close()

	got := map[cube.Pos]uuid.UUID{}
	if err := db.All(func(pos cube.Pos, id uuid.UUID) {
		got[pos] = id
	}); err != nil {
		t.Fatalf("All() = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("All() yielded %v handles, want %v", len(got), len(want))
	}
	for pos, id := range want {
		if got[pos] != id {
			t.Fatalf("handle at %v = %v, want %v", pos, got[pos], id)
		}
	}
}

func TestDBOverwrite(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	defer db.Close()

	pos := cube.Pos{7, 7, 7}
	first, second := uuid.New(), uuid.New()
	if err := db.Put(pos, first); err != nil {
		t.Fatalf("Put() = %v", err)
	}
	if err := db.Put(pos, second); err != nil {
		t.Fatalf("second Put() = %v", err)
	}

	count := 0
	if err := db.All(func(p cube.Pos, id uuid.UUID) {
		count++
		if p != pos || id != second {
			t.Fatalf("All() yielded %v at %v, want %v at %v", id, p, second, pos)
		}
	}); err != nil {
		t.Fatalf("All() = %v", err)
	}
	if count != 1 {
		t.Fatalf("All() yielded %v entries, want 1", count)
	}
}
