package boxsim

import (
	"math"

	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/world"
	"github.com/go-gl/mathgl/mgl64"
)

// VoxelShape presents a voxel world as a single immovable collision shape:
// an infinite static body of mass 0 that never moves and never collides with
// itself. It is a read-through view: solidity is read from the world per
// cell, per call, so a query always reflects whatever the world holds at the
// instant each cell is read. Nothing is cached across calls.
type VoxelShape struct {
	w world.Source
}

// NewVoxelShape creates a VoxelShape reading from the world source passed.
func NewVoxelShape(w world.Source) *VoxelShape {
	return &VoxelShape{w: w}
}

// BoxesWithin appends a unit bounding box for every solid voxel that
// intersects the box passed to dst and returns the resulting slice.
func (v *VoxelShape) BoxesWithin(box cube.BBox, dst []cube.BBox) []cube.BBox {
	min, max := box.Min(), box.Max()
	minX, minY, minZ := int(math.Floor(min[0])), int(math.Floor(min[1])), int(math.Floor(min[2]))
	maxX, maxY, maxZ := int(math.Ceil(max[0])), int(math.Ceil(max[1])), int(math.Ceil(max[2]))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if !v.w.Solid(cube.Pos{x, y, z}) {
					continue
				}
				fx, fy, fz := float64(x), float64(y), float64(z)
				dst = append(dst, cube.Box(fx, fy, fz, fx+1, fy+1, fz+1))
			}
		}
	}
	return dst
}

// VoxelHit describes a ray hitting a solid voxel.
type VoxelHit struct {
	// Pos is the position of the voxel hit.
	Pos cube.Pos
	// Point is the world position at which the ray entered the voxel.
	Point mgl64.Vec3
	// Normal is the normal of the voxel face the ray entered through.
	Normal mgl64.Vec3
	// Frac is the fraction of the segment at which the hit occurred, in
	// [0, 1].
	Frac float64
}

// TraceRay walks the voxels crossed by the segment from..to in order and
// returns the first solid one. The second return value is false if the
// segment crosses no solid voxel.
func (v *VoxelShape) TraceRay(from, to mgl64.Vec3) (VoxelHit, bool) {
	dir := to.Sub(from)
	cur := cube.PosFromVec3(from)
	if v.w.Solid(cur) {
		// The segment starts inside a solid voxel. There is no entry face;
		// answer with the face opposing the dominant direction of travel.
		axis, largest := 0, 0.0
		for i := range 3 {
			if a := math.Abs(dir[i]); a > largest {
				axis, largest = i, a
			}
		}
		var normal mgl64.Vec3
		if dir[axis] > 0 {
			normal[axis] = -1
		} else {
			normal[axis] = 1
		}
		return VoxelHit{Pos: cur, Point: from, Normal: normal}, true
	}

	var (
		step         [3]int
		tMax, tDelta [3]float64
	)
	for i := range 3 {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (math.Floor(from[i]) + 1 - from[i]) / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (from[i] - math.Floor(from[i])) / -dir[i]
		default:
			step[i] = 0
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}
	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > 1 {
			return VoxelHit{}, false
		}
		tMax[axis] += tDelta[axis]
		cur[axis] += step[axis]
		if v.w.Solid(cur) {
			var normal mgl64.Vec3
			normal[axis] = -float64(step[axis])
			return VoxelHit{Pos: cur, Point: from.Add(dir.Mul(t)), Normal: normal, Frac: t}, true
		}
	}
}
