package boxsim

import (
	"math"
	"testing"

	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/world"
	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxesWithin(t *testing.T) {
	v := NewVoxelShape(floorWorld{})

	boxes := v.BoxesWithin(cube.Box(0.2, 0.5, 0.2, 0.8, 2, 0.8), nil)
	// The query box spans the voxel columns x 0..1, z 0..1; only the y = 0
	// layer is solid.
	if len(boxes) != 4 {
		t.Fatalf("BoxesWithin() returned %v boxes, want 4", len(boxes))
	}
	for _, b := range boxes {
		if b.Min()[1] != 0 || b.Max()[1] != 1 {
			t.Fatalf("box %v..%v outside the solid layer", b.Min(), b.Max())
		}
	}

	if boxes := NewVoxelShape(world.Empty{}).BoxesWithin(cube.Box(0, 0, 0, 8, 8, 8), nil); len(boxes) != 0 {
		t.Fatalf("BoxesWithin() on an empty world returned %v boxes", len(boxes))
	}
}

func TestTraceRayDown(t *testing.T) {
	v := NewVoxelShape(floorWorld{})

	hit, ok := v.TraceRay(mgl64.Vec3{0.5, 3, 0.5}, mgl64.Vec3{0.5, -2, 0.5})
	if !ok {
		t.Fatalf("TraceRay() missed the floor")
	}
	if want := (cube.Pos{0, 0, 0}); hit.Pos != want {
		t.Fatalf("Pos = %v, want %v", hit.Pos, want)
	}
	if want := (mgl64.Vec3{0.5, 1, 0.5}); !hit.Point.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("Point = %v, want %v", hit.Point, want)
	}
	if want := (mgl64.Vec3{0, 1, 0}); hit.Normal != want {
		t.Fatalf("Normal = %v, want %v", hit.Normal, want)
	}
	if math.Abs(hit.Frac-0.4) > 1e-9 {
		t.Fatalf("Frac = %v, want 0.4", hit.Frac)
	}
}

func TestTraceRayDiagonal(t *testing.T) {
	v := NewVoxelShape(floorWorld{})

	hit, ok := v.TraceRay(mgl64.Vec3{0.5, 2.5, 0.5}, mgl64.Vec3{3.5, 0.5, 0.5})
	if !ok {
		t.Fatalf("TraceRay() missed the floor")
	}
	if hit.Pos.Y() != 0 {
		t.Fatalf("Pos = %v, want a floor voxel", hit.Pos)
	}
	if want := (mgl64.Vec3{0, 1, 0}); hit.Normal != want {
		t.Fatalf("Normal = %v, want %v", hit.Normal, want)
	}
}

func TestTraceRayMiss(t *testing.T) {
	v := NewVoxelShape(floorWorld{})
	tests := []struct {
		name     string
		from, to mgl64.Vec3
	}{
		{name: "above floor", from: mgl64.Vec3{0.5, 3, 0.5}, to: mgl64.Vec3{8.5, 3, 0.5}},
		{name: "stops short", from: mgl64.Vec3{0.5, 5, 0.5}, to: mgl64.Vec3{0.5, 2, 0.5}},
		{name: "pointing up", from: mgl64.Vec3{0.5, 2, 0.5}, to: mgl64.Vec3{0.5, 64, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := v.TraceRay(tt.from, tt.to); ok {
				t.Fatalf("TraceRay() = %+v, want miss", hit)
			}
		})
	}
}

func TestTraceRayInsideSolid(t *testing.T) {
	v := NewVoxelShape(floorWorld{})

	from := mgl64.Vec3{0.5, 0.5, 0.5}
	hit, ok := v.TraceRay(from, mgl64.Vec3{0.5, -3, 0.5})
	if !ok {
		t.Fatalf("TraceRay() starting inside a solid voxel missed")
	}
	if want := (cube.Pos{0, 0, 0}); hit.Pos != want {
		t.Fatalf("Pos = %v, want %v", hit.Pos, want)
	}
	if hit.Point != from {
		t.Fatalf("Point = %v, want the ray origin %v", hit.Point, from)
	}
	if want := (mgl64.Vec3{0, 1, 0}); hit.Normal != want {
		t.Fatalf("Normal = %v, want the face opposing travel %v", hit.Normal, want)
	}
	if hit.Frac != 0 {
		t.Fatalf("Frac = %v, want 0", hit.Frac)
	}
}
