// Package boxsim implements a small rigid-body engine for cubic bodies in a
// voxel world. It supports exactly what the loose-block subsystem needs:
// gravity, sweep collision against solid voxels, pairwise separation of
// overlapping bodies, rest detection, impulses and ray tests.
package boxsim

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/physics"
	"github.com/dm-vev/rubble/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the tunable parameters of an Engine. The zero value of every
// field except World is usable; defaults are applied by New.
type Config struct {
	// Log is the Logger used to report bodies with corrupted state. If nil,
	// Log is set to slog.Default().
	Log *slog.Logger
	// World is the voxel world bodies collide with. If nil, bodies fall
	// through an empty world forever.
	World world.Source
	// Gravity is the constant acceleration applied to all bodies. If zero,
	// a gravity of (0, -10, 0) is used.
	Gravity mgl64.Vec3
	// RestSpeed is the speed below which a supported body is considered to
	// be settling. Defaults to 0.08.
	RestSpeed float64
	// RestTicks is the amount of consecutive settling steps after which a
	// body is put to rest. Defaults to 10.
	RestTicks int
}

func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.World == nil {
		conf.World = world.Empty{}
	}
	if conf.Gravity == (mgl64.Vec3{}) {
		conf.Gravity = mgl64.Vec3{0, -10, 0}
	}
	if conf.RestSpeed <= 0 {
		conf.RestSpeed = 0.08
	}
	if conf.RestTicks <= 0 {
		conf.RestTicks = 10
	}
	return conf
}

// New creates an Engine using the Config.
func (conf Config) New() *Engine {
	conf = conf.withDefaults()
	return &Engine{
		conf:   conf,
		voxels: NewVoxelShape(conf.World),
		bodies: make(map[*physics.BodyState]*bodyMeta),
	}
}

// Engine is a rigid-body engine for cubic bodies. It implements
// physics.Engine and is safe for concurrent use.
type Engine struct {
	conf   Config
	voxels *VoxelShape

	mu      sync.Mutex
	bodies  map[*physics.BodyState]*bodyMeta
	scratch []cube.BBox
}

// bodyMeta holds the engine-internal bookkeeping of one body.
type bodyMeta struct {
	restFor  int
	resting  bool
	onGround bool
}

// Voxels returns the collision shape the engine uses for the static voxel
// world.
func (e *Engine) Voxels() *VoxelShape {
	return e.voxels
}

// Add makes the body passed live in the simulation. Adding a live body is a
// no-op.
func (e *Engine) Add(s *physics.BodyState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.bodies[s]; ok {
		return
	}
	e.bodies[s] = &bodyMeta{}
}

// Remove removes the body passed. Removing a body that is not live is a
// no-op.
func (e *Engine) Remove(s *physics.BodyState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.bodies, s)
}

// BodyCount returns the amount of live bodies.
func (e *Engine) BodyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bodies)
}

// Resting checks if the body passed has settled. Bodies not live in the
// simulation are never resting.
func (e *Engine) Resting(s *physics.BodyState) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.bodies[s]
	return ok && m.resting
}

// Impulse applies an instantaneous central impulse to the body passed,
// waking it if it was resting.
func (e *Engine) Impulse(s *physics.BodyState, impulse mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s.ApplyImpulse(impulse)
	if m, ok := e.bodies[s]; ok {
		m.wake()
	}
}

// WakeWithin clears the rest state of all bodies whose bounds intersect the
// box passed.
func (e *Engine) WakeWithin(box cube.BBox) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for s, m := range e.bodies {
		if m.resting && s.AABB().IntersectsWith(box) {
			m.wake()
		}
	}
}

// Transform returns the current position and orientation of the body passed.
func (e *Engine) Transform(s *physics.BodyState) (mgl64.Vec3, mgl64.Quat) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.Pos, s.Rot
}

func (m *bodyMeta) wake() {
	m.resting, m.restFor = false, 0
}

// Step advances the simulation by the duration passed: gravity and
// integration with voxel sweep collision first, then pairwise separation of
// overlapping bodies, then rest detection. Bodies whose state turns
// non-finite are frozen and reported as an error; all other bodies remain
// usable.
func (e *Engine) Step(delta time.Duration) error {
	dt := delta.Seconds()
	if dt <= 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var corrupted int
	for s, m := range e.bodies {
		if m.resting || s.Mass <= 0 {
			continue
		}
		e.integrate(s, m, dt)
		if !finiteVec(s.Pos) || !finiteVec(s.Vel) {
			// Freezing the body keeps the rest of the step usable; the
			// caller decides what to do with the fault.
			s.Vel, s.Ang = mgl64.Vec3{}, mgl64.Vec3{}
			m.resting = true
			corrupted++
		}
	}

	e.separateBodies()

	for s, m := range e.bodies {
		if m.resting || s.Mass <= 0 {
			continue
		}
		if m.onGround && s.Vel.Len() < e.conf.RestSpeed && s.Ang.Len() < e.conf.RestSpeed {
			m.restFor++
			if m.restFor >= e.conf.RestTicks {
				m.resting = true
				s.Vel, s.Ang = mgl64.Vec3{}, mgl64.Vec3{}
			}
		} else {
			m.restFor = 0
		}
	}

	if corrupted > 0 {
		return fmt.Errorf("boxsim: froze %v bodies with non-finite state", corrupted)
	}
	return nil
}

// integrate applies gravity to the body passed and moves it by its velocity,
// sweeping its bounds against the solid voxels it would cross. Collisions
// zero the velocity on the blocked axis (scaled by the restitution of the
// body) and damp angular velocity by the body's angular factor.
func (e *Engine) integrate(s *physics.BodyState, m *bodyMeta, dt float64) {
	s.Vel = s.Vel.Add(e.conf.Gravity.Mul(dt))

	want := s.Vel.Mul(dt)
	box := s.AABB()
	e.scratch = e.voxels.BoxesWithin(box.Extend(want).Grow(0.25), e.scratch[:0])
	blocks := e.scratch

	deltaX, deltaY, deltaZ := want[0], want[1], want[2]
	for _, b := range blocks {
		deltaY = box.YOffset(b, deltaY)
	}
	box = box.Translate(mgl64.Vec3{0, deltaY})
	for _, b := range blocks {
		deltaX = box.XOffset(b, deltaX)
	}
	box = box.Translate(mgl64.Vec3{deltaX})
	for _, b := range blocks {
		deltaZ = box.ZOffset(b, deltaZ)
	}

	contact := false
	if !mgl64.FloatEqual(deltaX, want[0]) {
		s.Vel[0] = -s.Vel[0] * s.Restitution
		contact = true
	}
	if !mgl64.FloatEqual(deltaY, want[1]) {
		if want[1] < 0 {
			m.onGround = true
		}
		s.Vel[1] = -s.Vel[1] * s.Restitution
		contact = true
	} else if !mgl64.FloatEqual(want[1], 0) {
		m.onGround = false
	}
	if !mgl64.FloatEqual(deltaZ, want[2]) {
		s.Vel[2] = -s.Vel[2] * s.Restitution
		contact = true
	}
	if m.onGround {
		s.Vel[0] *= 1 - s.Friction
		s.Vel[2] *= 1 - s.Friction
	}
	if contact {
		s.Ang = s.Ang.Mul(s.AngularFactor)
	}

	s.Pos = s.Pos.Add(mgl64.Vec3{deltaX, deltaY, deltaZ})

	if spin := s.Ang.Len(); spin > 0 {
		s.Rot = s.Rot.Mul(mgl64.QuatRotate(spin*dt, s.Ang.Mul(1/spin))).Normalize()
	}
}

func finiteVec(v mgl64.Vec3) bool {
	for i := range 3 {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}
