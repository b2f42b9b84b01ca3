package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Hit is the result of a successful RayTrace. Voxel hits are resolved to a
// stable entity handle; hits against dynamic bodies carry the body instead
// and are deliberately not resolved to a handle.
type Hit struct {
	// Entity is the handle of the world entity at the voxel hit. It is the
	// zero UUID if the ray hit a dynamic body instead.
	Entity uuid.UUID
	// Body is the dynamic body hit, or nil if the ray hit the voxel world.
	Body *Body
	// Position is the world position at which the ray hit.
	Position mgl64.Vec3
	// Normal is the surface normal at the hit position.
	Normal mgl64.Vec3
}

// RayTrace traces the segment from origin along direction for maxDistance
// through the world, returning the closest hit among the static voxel world
// and all live bodies. The direction is not normalised before use. If
// nothing is hit, the second return value is false.
func (s *Simulation) RayTrace(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool) {
	to := origin.Add(direction.Mul(maxDistance))
	hit, ok := s.conf.Engine.RayTest(origin, to)
	if !ok {
		return Hit{}, false
	}
	switch hit.Kind {
	case HitVoxel:
		return Hit{
			Entity:   s.conf.Handles.GetOrCreate(hit.Voxel),
			Position: hit.Position,
			Normal:   hit.Normal,
		}, true
	case HitBody:
		s.mu.Lock()
		b := s.byState[hit.Body]
		s.mu.Unlock()
		if b == nil {
			// The body was removed between the engine test and the lookup.
			return Hit{}, false
		}
		return Hit{Body: b, Position: hit.Position, Normal: hit.Normal}, true
	}
	return Hit{}, false
}
