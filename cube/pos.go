package cube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pos holds the position of a voxel. The position is represented of an array
// with an x, y and z value, where the y value is vertical.
type Pos [3]int

// X returns the X coordinate of the position.
func (p Pos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the position.
func (p Pos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the position.
func (p Pos) Z() int {
	return p[2]
}

// Add adds two positions together and returns a new one with the combined
// values.
func (p Pos) Add(pos Pos) Pos {
	return Pos{p[0] + pos[0], p[1] + pos[1], p[2] + pos[2]}
}

// Vec3 returns a vector of the position, with the X, Y and Z values of the
// position as float64s.
func (p Pos) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Vec3Centre returns a vector representing the centre of the voxel at the
// position, so the Vec3 with 0.5 added on each axis.
func (p Pos) Vec3Centre() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]) + 0.5, float64(p[1]) + 0.5, float64(p[2]) + 0.5}
}

// PosFromVec3 returns the voxel position that contains the mgl64.Vec3 passed,
// flooring each of its values.
func PosFromVec3(vec mgl64.Vec3) Pos {
	return Pos{int(math.Floor(vec[0])), int(math.Floor(vec[1])), int(math.Floor(vec[2]))}
}

const (
	packAxisBits  = 26
	packYBits     = 12
	packAxisMask  = 1<<packAxisBits - 1
	packYMask     = 1<<packYBits - 1
	packAxisBound = 1 << (packAxisBits - 1)
	packYBound    = 1 << (packYBits - 1)
)

// Pack packs the position into a single int64 key, using 26 bits for the X
// and Z coordinates and 12 bits for the Y coordinate. Positions outside of
// that range wrap around, so worlds are expected to stay within roughly
// ±33 million blocks horizontally and ±2048 blocks vertically.
func (p Pos) Pack() int64 {
	return int64(p[0]&packAxisMask)<<(packAxisBits+packYBits) |
		int64(p[1]&packYMask)<<packAxisBits |
		int64(p[2]&packAxisMask)
}

// UnpackPos is the inverse of Pos.Pack, restoring the sign of each
// coordinate.
func UnpackPos(v int64) Pos {
	x := int(v >> (packAxisBits + packYBits) & packAxisMask)
	y := int(v >> packAxisBits & packYMask)
	z := int(v & packAxisMask)
	if x >= packAxisBound {
		x -= packAxisMask + 1
	}
	if y >= packYBound {
		y -= packYMask + 1
	}
	if z >= packAxisBound {
		z -= packAxisMask + 1
	}
	return Pos{x, y, z}
}
