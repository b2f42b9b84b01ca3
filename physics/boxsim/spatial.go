package boxsim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/physics"
)

// cellKey hashes the coordinates of a unit grid cell into a spatial hash
// key.
func cellKey(x, y, z int32) uint64 {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], uint32(x))
	binary.LittleEndian.PutUint32(b[4:], uint32(y))
	binary.LittleEndian.PutUint32(b[8:], uint32(z))
	return xxhash.Sum64(b[:])
}

// separateBodies resolves overlap between pairs of bodies by pushing them
// apart along the axis of least penetration. Candidate pairs come from a
// spatial hash over unit cells, so only bodies sharing a cell are compared.
// The caller must hold e.mu.
func (e *Engine) separateBodies() {
	if len(e.bodies) < 2 {
		return
	}
	grid := make(map[uint64][]*physics.BodyState, len(e.bodies))
	for s := range e.bodies {
		box := s.AABB()
		min, max := box.Min(), box.Max()
		for x := int32(math.Floor(min[0])); x <= int32(math.Floor(max[0])); x++ {
			for y := int32(math.Floor(min[1])); y <= int32(math.Floor(max[1])); y++ {
				for z := int32(math.Floor(min[2])); z <= int32(math.Floor(max[2])); z++ {
					key := cellKey(x, y, z)
					grid[key] = append(grid[key], s)
				}
			}
		}
	}

	type pair struct{ a, b *physics.BodyState }
	seen := make(map[pair]struct{})
	for _, cell := range grid {
		for i := 0; i < len(cell); i++ {
			for j := i + 1; j < len(cell); j++ {
				a, b := cell[i], cell[j]
				if _, ok := seen[pair{a, b}]; ok {
					continue
				}
				if _, ok := seen[pair{b, a}]; ok {
					continue
				}
				seen[pair{a, b}] = struct{}{}
				e.separate(a, b)
			}
		}
	}
}

// separate pushes two overlapping bodies apart along their axis of least
// penetration, weighted by mass, and wakes both. The caller must hold e.mu.
func (e *Engine) separate(a, b *physics.BodyState) {
	boxA, boxB := a.AABB(), b.AABB()
	if !boxA.IntersectsWith(boxB) {
		return
	}
	depth, axis := penetration(boxA, boxB)
	if axis < 0 {
		return
	}
	if a.Pos[axis] > b.Pos[axis] {
		a, b = b, a
	}

	var moveA, moveB float64
	switch {
	case a.Mass <= 0 && b.Mass <= 0:
		return
	case a.Mass <= 0:
		moveB = depth
	case b.Mass <= 0:
		moveA = -depth
	default:
		total := a.Mass + b.Mass
		moveA = -depth * (b.Mass / total)
		moveB = depth * (a.Mass / total)
	}
	if moveA != 0 {
		a.Pos[axis] += moveA
		a.Vel[axis] = 0
	}
	if moveB != 0 {
		b.Pos[axis] += moveB
		b.Vel[axis] = 0
	}
	if m, ok := e.bodies[a]; ok {
		m.wake()
	}
	if m, ok := e.bodies[b]; ok {
		m.wake()
	}
}

// penetration returns the overlap depth and axis of least penetration
// between two intersecting boxes, or a negative axis if they do not overlap.
func penetration(a, b cube.BBox) (float64, int) {
	depth, axis := math.Inf(1), -1
	for i := range 3 {
		overlap := math.Min(a.Max()[i], b.Max()[i]) - math.Max(a.Min()[i], b.Min()[i])
		if overlap <= 0 {
			return 0, -1
		}
		if overlap < depth {
			depth, axis = overlap, i
		}
	}
	return depth, axis
}
