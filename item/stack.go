// Package item implements the lootable item representations built from block
// families when a loose block body is collected.
package item

import "github.com/dm-vev/rubble/block"

// Stack represents a stack of items belonging to one block family. Stack is
// immutable: methods that change it return a new Stack.
type Stack struct {
	family block.Family
	count  int
}

// NewStack creates a new stack of the block family passed. Counts lower than
// 1 are normalised to 1.
func NewStack(f block.Family, count int) Stack {
	if count < 1 {
		count = 1
	}
	return Stack{family: f, count: count}
}

// Family returns the block family the stack was built from.
func (s Stack) Family() block.Family {
	return s.family
}

// Count returns the amount of items in the stack.
func (s Stack) Count() int {
	return s.count
}

// Empty checks if the stack is the zero Stack, holding no items.
func (s Stack) Empty() bool {
	return s.count == 0
}

// Grow returns a Stack with the count increased by n. The count never drops
// below 0.
func (s Stack) Grow(n int) Stack {
	s.count += n
	if s.count < 0 {
		s.count = 0
	}
	return s
}
