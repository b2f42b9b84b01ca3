// Package world defines the boundary between the physics subsystem and the
// voxel world it operates in, along with the registry of stable entity
// handles assigned to voxel positions.
package world

import (
	"github.com/dm-vev/rubble/block"
	"github.com/dm-vev/rubble/cube"
)

// Source is a read-through view of a voxel world. Implementations may mutate
// at any time: callers must re-read a position for every query and may not
// assume consistency across multiple positions read in sequence.
type Source interface {
	// Solid checks if the voxel at the position passed is solid. Solid
	// voxels collide with loose block bodies and stop rays.
	Solid(pos cube.Pos) bool
	// Block returns the block type of the voxel at the position passed.
	Block(pos cube.Pos) block.Type
}

// Empty is a Source without any solid voxels.
type Empty struct{}

// Solid always returns false.
func (Empty) Solid(cube.Pos) bool { return false }

// Block always returns the unknown block type.
func (Empty) Block(cube.Pos) block.Type { return 0 }
