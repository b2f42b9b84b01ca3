package physics

import (
	"time"

	"github.com/dm-vev/rubble/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Engine is the rigid-body simulator the subsystem drives. Implementations
// must be safe for concurrent use: ray tests, impulses and transform reads
// may happen while the engine is stepping.
type Engine interface {
	// Add makes the body passed live in the simulation. Adding a body that
	// is already live is a no-op.
	Add(s *BodyState)
	// Remove removes the body passed from the simulation. Removing a body
	// that is not (or no longer) live is a no-op.
	Remove(s *BodyState)
	// Step advances the simulation by the duration passed. An error returned
	// indicates an internal engine fault; the state of the bodies remains
	// usable for queries.
	Step(delta time.Duration) error
	// Resting checks if the body passed has settled and stopped moving.
	// Bodies not live in the simulation are never resting.
	Resting(s *BodyState) bool
	// Impulse applies an instantaneous central impulse to the body passed,
	// waking it if it was resting.
	Impulse(s *BodyState, impulse mgl64.Vec3)
	// WakeWithin clears the rest state of all bodies whose bounds intersect
	// the box passed.
	WakeWithin(box cube.BBox)
	// RayTest finds the closest hit of the segment from..to against the
	// static voxel world and all live bodies. The second return value is
	// false if nothing was hit.
	RayTest(from, to mgl64.Vec3) (RayHit, bool)
	// Transform returns the current position and orientation of the body
	// passed.
	Transform(s *BodyState) (mgl64.Vec3, mgl64.Quat)
}

// HitKind tags the variant held by a RayHit.
type HitKind uint8

const (
	// HitVoxel means the ray hit the static voxel world. RayHit.Voxel holds
	// the voxel position hit.
	HitVoxel HitKind = iota
	// HitBody means the ray hit a live dynamic body. RayHit.Body holds the
	// body hit.
	HitBody
)

// RayHit describes the closest hit found by Engine.RayTest. It is a tagged
// variant: Kind specifies whether Voxel or Body holds the hit subject.
type RayHit struct {
	Kind HitKind
	// Voxel is the position of the voxel hit. Only valid if Kind is
	// HitVoxel.
	Voxel cube.Pos
	// Body is the dynamic body hit. Only valid if Kind is HitBody.
	Body *BodyState
	// Position is the world position at which the ray hit.
	Position mgl64.Vec3
	// Normal is the surface normal at the hit position.
	Normal mgl64.Vec3
}
