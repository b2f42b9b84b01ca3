package physics

import (
	"time"

	"github.com/dm-vev/rubble/block"
	"github.com/dm-vev/rubble/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Size is the visual and collision size of a loose block body.
type Size uint8

const (
	// Full is a body the size of one whole voxel.
	Full Size = iota
	// Half is a body half the size of a voxel on each axis.
	Half
	// Quarter is a body a quarter the size of a voxel on each axis.
	Quarter
)

// HalfExtent returns half the edge length of the cubic collision shape used
// for the size.
func (s Size) HalfExtent() float64 {
	switch s {
	case Half:
		return 0.25
	case Quarter:
		return 0.125
	}
	return 0.5
}

// Scale returns the factor a renderer should scale a unit block model by to
// draw a body of this size.
func (s Size) Scale() float64 {
	switch s {
	case Half:
		return 0.5
	case Quarter:
		return 0.25
	}
	return 1.0
}

// PickupPhase is the phase a body is in on its way to being collected by an
// agent. Phases only ever advance: a magnetized body never becomes eligible
// again, even if every agent moves out of range.
type PickupPhase uint8

const (
	// Eligible means the body has not yet been claimed by a nearby agent.
	Eligible PickupPhase = iota
	// Magnetized means an agent came close enough to claim the body. The
	// body homes in on the nearest agent while one is in range.
	Magnetized
	// Collected means the body reached an agent and was removed. This phase
	// is terminal.
	Collected
)

// Body is one loose, physically simulated block. Bodies are created through
// Simulation.CreateBody and friends and become live once the tick driver
// admits them.
type Body struct {
	typ       block.Type
	size      Size
	temporary bool
	createdAt time.Time

	// phase is only written by the tick driver while it holds the registry
	// lock.
	phase PickupPhase

	s *BodyState
}

// Type returns the block type of the body.
func (b *Body) Type() block.Type {
	return b.typ
}

// Size returns the size of the body.
func (b *Body) Size() Size {
	return b.size
}

// Temporary checks if the body is a temporary one. Temporary bodies are
// evicted once they settle, age out or exceed the registry capacity, and are
// never collected by agents.
func (b *Body) Temporary() bool {
	return b.temporary
}

// Age returns the time that passed since the body was created, relative to
// the time passed.
func (b *Body) Age(now time.Time) time.Duration {
	return now.Sub(b.createdAt)
}

// Phase returns the pickup phase of the body as of the last completed scan.
func (b *Body) Phase() PickupPhase {
	return b.phase
}

// Handle returns the engine-owned state of the body. The handle may be used
// for engine queries; its fields must not be written once the body has been
// enqueued.
func (b *Body) Handle() *BodyState {
	return b.s
}

// BodyState holds the kinematic state of a rigid body as simulated by an
// Engine. A BodyState is owned exclusively by its creator until the body is
// admitted, and by the engine afterwards: once admitted, it may only be read
// or written through the engine.
type BodyState struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
	Vel mgl64.Vec3
	Ang mgl64.Vec3

	// Half is half the edge length of the cubic collision shape.
	Half float64
	// Mass is the mass of the body. A mass of 0 makes the body immovable.
	Mass float64
	// Restitution is the bounciness of the body on contact, in [0, 1].
	Restitution float64
	// Friction damps tangential velocity while the body rests on a surface.
	Friction float64
	// AngularFactor damps angular velocity on contact.
	AngularFactor float64
}

// ApplyImpulse applies an instantaneous central impulse, changing the
// velocity by impulse divided by the mass of the body. Immovable bodies are
// unaffected.
func (s *BodyState) ApplyImpulse(impulse mgl64.Vec3) {
	if s.Mass <= 0 {
		return
	}
	s.Vel = s.Vel.Add(impulse.Mul(1 / s.Mass))
}

// AABB returns the axis-aligned bounds of the body at its current position.
func (s *BodyState) AABB() cube.BBox {
	h := s.Half
	return cube.Box(s.Pos[0]-h, s.Pos[1]-h, s.Pos[2]-h, s.Pos[0]+h, s.Pos[1]+h, s.Pos[2]+h)
}

// RenderBody is the render-time view of one live body, as enumerated by
// Simulation.Render.
type RenderBody struct {
	// Position is the world position of the centre of the body.
	Position mgl64.Vec3
	// Rotation is the orientation of the body.
	Rotation mgl64.Quat
	// Scale is the factor to scale a unit block model by: 1.0, 0.5 or 0.25.
	Scale float64
	// Type is the block type to draw the body as.
	Type block.Type
}
