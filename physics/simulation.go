// Package physics implements the lifecycle of loose, physically simulated
// blocks in a voxel world: turning voxels into transient rigid bodies,
// admitting them into a running simulation, ageing and evicting them,
// letting nearby agents collect them and answering ray queries against both
// the static voxel world and the live bodies.
package physics

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/dm-vev/rubble/block"
	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/item"
	"github.com/go-gl/mathgl/mgl64"
)

// Simulation owns the registry of live block bodies and drives the engine.
// One goroutine, the tick driver, calls Advance; any number of producers may
// call CreateBody, RayTrace and BlockChanged concurrently with it.
type Simulation struct {
	conf  Config
	queue insertionQueue

	// mu guards the registry for the duration of each registry-mutating
	// phase of a tick. The engine step itself runs without it, so producers
	// only ever wait for admission, eviction and pickup scans.
	mu      sync.Mutex
	bodies  []*Body
	byState map[*BodyState]*Body

	metrics *Metrics
}

// Metrics returns the lifecycle counters of the Simulation.
func (s *Simulation) Metrics() *Metrics {
	return s.metrics
}

// CreateBody creates a loose block body of the block type passed at the
// position passed, applying the impulse as an instantaneous central impulse.
// Translucent block types produce no body: the second return value is false
// and nothing is created. The body returned is not yet live; it becomes live
// once the tick driver admits it during the next call to Advance.
//
// A temporary body created while the registry is over capacity first runs an
// eviction pass, bounding the registry growth of a burst of temporary
// bodies.
func (s *Simulation) CreateBody(pos mgl64.Vec3, t block.Type, impulse mgl64.Vec3, size Size, temporary bool) (*Body, bool) {
	if s.conf.Blocks.Translucent(t) {
		s.metrics.incRejected()
		return nil, false
	}
	if temporary {
		s.mu.Lock()
		if len(s.bodies) > s.conf.MaxTemporary {
			s.evict(s.conf.Now())
		}
		s.mu.Unlock()
	}

	st := &BodyState{
		Pos:           pos,
		Rot:           mgl64.QuatIdent(),
		Half:          size.HalfExtent(),
		Mass:          s.conf.Blocks.Mass(t),
		Friction:      0.5,
		AngularFactor: 0.5,
	}
	st.ApplyImpulse(impulse)

	b := &Body{typ: t, size: size, temporary: temporary, createdAt: s.conf.Now(), s: st}
	s.queue.enqueue(b)
	return b, true
}

// CreateTemporary creates a temporary body with no initial impulse.
func (s *Simulation) CreateTemporary(pos mgl64.Vec3, t block.Type, size Size) (*Body, bool) {
	return s.CreateBody(pos, t, mgl64.Vec3{}, size, true)
}

// CreateTemporaryWithImpulse creates a temporary body with the initial
// impulse passed.
func (s *Simulation) CreateTemporaryWithImpulse(pos mgl64.Vec3, t block.Type, impulse mgl64.Vec3, size Size) (*Body, bool) {
	return s.CreateBody(pos, t, impulse, size, true)
}

// SpawnLootable creates a quarter-size, collectable body of the block type
// passed near the position passed, randomly offset by up to half a voxel on
// each axis so stacked drops don't spawn inside each other.
func (s *Simulation) SpawnLootable(pos mgl64.Vec3, t block.Type) (*Body, bool) {
	offset := mgl64.Vec3{rand.Float64() * 0.5, rand.Float64() * 0.5, rand.Float64() * 0.5}
	return s.CreateBody(pos.Add(offset), t, mgl64.Vec3{}, Quarter, false)
}

// Advance drives one full tick: it drains the insertion queue into the
// registry and the engine, steps the engine by the duration passed, evicts
// expired temporary bodies and runs the pickup scan. An engine fault during
// the step is logged and contained; the remaining phases still run.
//
// Advance must only be called from one goroutine at a time.
func (s *Simulation) Advance(delta time.Duration) {
	queued := s.queue.drainAll()

	s.mu.Lock()
	for _, b := range queued {
		s.admit(b)
	}
	s.metrics.addAdmitted(len(queued))
	s.mu.Unlock()

	if err := s.conf.Engine.Step(delta); err != nil {
		s.conf.Log.Warn("physics: engine step failed, continuing tick", "err", err)
	}

	now := s.conf.Now()
	s.mu.Lock()
	s.evict(now)
	s.scanPickups()
	s.metrics.setRegistrySize(len(s.bodies))
	s.mu.Unlock()
}

// admit inserts a body at the front of the registry, keeping it ordered
// newest-first, and makes it live in the engine. The caller must hold s.mu.
func (s *Simulation) admit(b *Body) {
	s.bodies = slices.Insert(s.bodies, 0, b)
	s.byState[b.s] = b
	s.conf.Engine.Add(b.s)
}

// evict removes every temporary body that has settled, aged out or exceeds
// the registry capacity. Running it twice without a state change in between
// evicts nothing further. The caller must hold s.mu.
func (s *Simulation) evict(now time.Time) {
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]
		if !b.temporary {
			continue
		}
		if s.conf.Engine.Resting(b.s) || b.Age(now) > s.conf.MaxAge || len(s.bodies) > s.conf.MaxTemporary {
			s.remove(i)
			s.metrics.incEvicted()
		}
	}
}

// scanPickups advances the pickup phase of every collectable body: eligible
// bodies close enough to an agent become magnetized, magnetized bodies home
// in on the nearest agent and are collected once they reach it. The caller
// must hold s.mu.
func (s *Simulation) scanPickups() {
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]
		if b.temporary {
			continue
		}
		pos, _ := s.conf.Engine.Transform(b.s)

		var (
			nearest     Collector
			nearestPos  mgl64.Vec3
			nearestDist = math.MaxFloat64
		)
		for c := range s.conf.Agents.Collectors() {
			p := c.Position()
			// Strictly smaller, so the first of two equidistant collectors
			// wins.
			if d := pos.Sub(p).Len(); d < nearestDist {
				nearest, nearestPos, nearestDist = c, p, d
			}
		}
		if nearest == nil {
			continue
		}

		if b.phase == Eligible && nearestDist < s.conf.PickupRadius {
			b.phase = Magnetized
		}
		if b.phase != Magnetized || nearestDist >= s.conf.MagnetRadius {
			// A magnetized body out of magnet range stays magnetized; it
			// just receives no impulse until an agent comes back in range.
			continue
		}
		if nearestDist > s.conf.CollectDistance {
			delta := pos.Sub(nearestPos)
			s.conf.Engine.Impulse(b.s, delta.Normalize().Mul(-s.conf.MagnetImpulse))
			continue
		}
		s.collect(i, b, nearest)
	}
}

// collect transfers the item representation of the body to the collector
// passed and removes the body. The caller must hold s.mu.
func (s *Simulation) collect(i int, b *Body, to Collector) {
	stack := item.NewStack(s.conf.Blocks.Family(b.typ), 1)
	if !to.Collect(stack) {
		// No container retained the item, so its representation is gone for
		// good.
		s.metrics.incDiscarded()
	}
	s.conf.Sound.PlaySound(SoundLoot)
	b.phase = Collected
	s.remove(i)
	s.metrics.incCollected()
}

// remove deletes the body at index i from the registry and the engine. The
// caller must hold s.mu.
func (s *Simulation) remove(i int) {
	b := s.bodies[i]
	s.conf.Engine.Remove(b.s)
	delete(s.byState, b.s)
	s.bodies = slices.Delete(s.bodies, i, i+1)
}

// BlockChanged wakes all resting bodies in a small volume around the changed
// voxel position, so that bodies resting on a removed block start falling.
// It is meant to be subscribed to the world's block-change notifications.
func (s *Simulation) BlockChanged(pos cube.Pos) {
	v := pos.Vec3()
	r := s.conf.WakeRadius
	s.conf.Engine.WakeWithin(cube.Box(v[0]-r, v[1]-r, v[2]-r, v[0]+r, v[1]+r, v[2]+r))
}

// Render enumerates all currently live bodies with their transform and
// visual scale, for an external renderer to draw. The registry is
// snapshotted when iteration starts, so the sequence may be consumed
// concurrently with ticking.
func (s *Simulation) Render() iter.Seq[RenderBody] {
	return func(yield func(RenderBody) bool) {
		s.mu.Lock()
		bodies := slices.Clone(s.bodies)
		s.mu.Unlock()
		for _, b := range bodies {
			pos, rot := s.conf.Engine.Transform(b.s)
			if !yield(RenderBody{Position: pos, Rotation: rot, Scale: b.size.Scale(), Type: b.typ}) {
				return
			}
		}
	}
}

// BodyCount returns the amount of live bodies in the registry.
func (s *Simulation) BodyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}
