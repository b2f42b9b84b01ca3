package boxsim

import (
	"math"

	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// RayTest finds the closest hit of the segment from..to against the static
// voxel world and all live bodies. The second return value is false if
// nothing was hit.
func (e *Engine) RayTest(from, to mgl64.Vec3) (physics.RayHit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		hit      physics.RayHit
		found    bool
		bestFrac = math.Inf(1)
	)
	if vh, ok := e.voxels.TraceRay(from, to); ok {
		hit = physics.RayHit{Kind: physics.HitVoxel, Voxel: vh.Pos, Position: vh.Point, Normal: vh.Normal}
		bestFrac, found = vh.Frac, true
	}

	dir := to.Sub(from)
	for s := range e.bodies {
		frac, normal, ok := rayBox(from, dir, s.AABB())
		if !ok || frac >= bestFrac {
			continue
		}
		hit = physics.RayHit{Kind: physics.HitBody, Body: s, Position: from.Add(dir.Mul(frac)), Normal: normal}
		bestFrac, found = frac, true
	}
	return hit, found
}

// rayBox intersects the segment from + dir·t, t in [0, 1], with a box using
// the slab method. It returns the entry fraction and the normal of the face
// entered through. A segment starting inside the box hits at fraction 0 with
// a zero normal.
func rayBox(from, dir mgl64.Vec3, box cube.BBox) (float64, mgl64.Vec3, bool) {
	var (
		tMin, tMax = 0.0, 1.0
		axis       = -1
	)
	for i := range 3 {
		if dir[i] == 0 {
			if from[i] < box.Min()[i] || from[i] > box.Max()[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (box.Min()[i] - from[i]) / dir[i]
		t2 := (box.Max()[i] - from[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin, axis = t1, i
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, mgl64.Vec3{}, false
		}
	}
	var normal mgl64.Vec3
	if axis >= 0 {
		if dir[axis] > 0 {
			normal[axis] = -1
		} else {
			normal[axis] = 1
		}
	}
	return tMin, normal, true
}
