package item

import (
	"testing"

	"github.com/dm-vev/rubble/block"
)

func TestNewStack(t *testing.T) {
	f := block.FamilyHash("stone")
	s := NewStack(f, 3)
	if s.Family() != f || s.Count() != 3 {
		t.Fatalf("NewStack() = family %v count %v, want %v and 3", s.Family(), s.Count(), f)
	}
	if s.Empty() {
		t.Fatalf("Empty() = true for a stack of 3")
	}
	if got := NewStack(f, 0).Count(); got != 1 {
		t.Fatalf("NewStack(f, 0).Count() = %v, want 1", got)
	}
	if got := NewStack(f, -5).Count(); got != 1 {
		t.Fatalf("NewStack(f, -5).Count() = %v, want 1", got)
	}
}

func TestStackGrow(t *testing.T) {
	s := NewStack(block.FamilyHash("dirt"), 2)
	if got := s.Grow(3).Count(); got != 5 {
		t.Fatalf("Grow(3).Count() = %v, want 5", got)
	}
	if got := s.Grow(-10); got.Count() != 0 || !got.Empty() {
		t.Fatalf("Grow(-10) = count %v, want an empty stack", got.Count())
	}
	// The original stack is unchanged.
	if s.Count() != 2 {
		t.Fatalf("Count() = %v after Grow on a copy, want 2", s.Count())
	}
}
