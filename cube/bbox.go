package cube

import "github.com/go-gl/mathgl/mgl64"

// BBox represents an axis-aligned bounding box in a 3D space. It is defined
// by two points, of which one is the minimum point and the other the maximum.
type BBox struct {
	min, max mgl64.Vec3
}

// Box creates a new BBox with the minimum and maximum coordinates passed.
// Box does not check if the minimum values are in fact lower than the
// maximum ones.
func Box(x0, y0, z0, x1, y1, z1 float64) BBox {
	return BBox{min: mgl64.Vec3{x0, y0, z0}, max: mgl64.Vec3{x1, y1, z1}}
}

// Min returns the minimum point of the BBox.
func (box BBox) Min() mgl64.Vec3 {
	return box.min
}

// Max returns the maximum point of the BBox.
func (box BBox) Max() mgl64.Vec3 {
	return box.max
}

// Grow grows the BBox in all directions by the value passed and returns the
// new BBox.
func (box BBox) Grow(v float64) BBox {
	vec := mgl64.Vec3{v, v, v}
	return BBox{min: box.min.Sub(vec), max: box.max.Add(vec)}
}

// Translate moves the whole BBox by the vector passed and returns the new
// BBox.
func (box BBox) Translate(vec mgl64.Vec3) BBox {
	return BBox{min: box.min.Add(vec), max: box.max.Add(vec)}
}

// Extend expands the BBox on all axes as represented by the mgl64.Vec3
// passed. Negative coordinates result in an expansion towards the negative
// axis, and vice versa for positive coordinates.
func (box BBox) Extend(vec mgl64.Vec3) BBox {
	res := box
	for i, v := range vec {
		if v < 0 {
			res.min[i] += v
		} else {
			res.max[i] += v
		}
	}
	return res
}

// IntersectsWith checks if the BBox intersects with another BBox, returning
// true if this is the case.
func (box BBox) IntersectsWith(other BBox) bool {
	for i := range 3 {
		if other.max[i]-box.min[i] <= 0 || box.max[i]-other.min[i] <= 0 {
			return false
		}
	}
	return true
}

// Vec3Within checks if a vector is within the BBox.
func (box BBox) Vec3Within(vec mgl64.Vec3) bool {
	for i := range 3 {
		if vec[i] < box.min[i] || vec[i] > box.max[i] {
			return false
		}
	}
	return true
}

// XOffset calculates the offset on the X axis between two bounding boxes,
// returning a delta always smaller than or equal to deltaX if deltaX is
// bigger than 0, or bigger than or equal to deltaX if it is smaller than 0.
func (box BBox) XOffset(nearby BBox, deltaX float64) float64 {
	// Bail out if not within the Y and Z bounds of the other box.
	if box.max[1] <= nearby.min[1] || box.min[1] >= nearby.max[1] {
		return deltaX
	}
	if box.max[2] <= nearby.min[2] || box.min[2] >= nearby.max[2] {
		return deltaX
	}
	if deltaX > 0 && box.max[0] <= nearby.min[0] {
		if difference := nearby.min[0] - box.max[0]; difference < deltaX {
			return difference
		}
	}
	if deltaX < 0 && box.min[0] >= nearby.max[0] {
		if difference := nearby.max[0] - box.min[0]; difference > deltaX {
			return difference
		}
	}
	return deltaX
}

// YOffset calculates the offset on the Y axis between two bounding boxes,
// with the same semantics as XOffset.
func (box BBox) YOffset(nearby BBox, deltaY float64) float64 {
	if box.max[0] <= nearby.min[0] || box.min[0] >= nearby.max[0] {
		return deltaY
	}
	if box.max[2] <= nearby.min[2] || box.min[2] >= nearby.max[2] {
		return deltaY
	}
	if deltaY > 0 && box.max[1] <= nearby.min[1] {
		if difference := nearby.min[1] - box.max[1]; difference < deltaY {
			return difference
		}
	}
	if deltaY < 0 && box.min[1] >= nearby.max[1] {
		if difference := nearby.max[1] - box.min[1]; difference > deltaY {
			return difference
		}
	}
	return deltaY
}

// ZOffset calculates the offset on the Z axis between two bounding boxes,
// with the same semantics as XOffset.
func (box BBox) ZOffset(nearby BBox, deltaZ float64) float64 {
	if box.max[0] <= nearby.min[0] || box.min[0] >= nearby.max[0] {
		return deltaZ
	}
	if box.max[1] <= nearby.min[1] || box.min[1] >= nearby.max[1] {
		return deltaZ
	}
	if deltaZ > 0 && box.max[2] <= nearby.min[2] {
		if difference := nearby.min[2] - box.max[2]; difference < deltaZ {
			return difference
		}
	}
	if deltaZ < 0 && box.min[2] >= nearby.max[2] {
		if difference := nearby.max[2] - box.min[2]; difference > deltaZ {
			return difference
		}
	}
	return deltaZ
}
