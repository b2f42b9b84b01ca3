package boxsim

import (
	"math"
	"testing"
	"time"

	"github.com/dm-vev/rubble/block"
	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// floorWorld is a Source with solid ground at and below height 0.
type floorWorld struct{}

func (floorWorld) Solid(pos cube.Pos) bool {
	return pos.Y() <= 0
}

func (floorWorld) Block(cube.Pos) block.Type {
	return 0
}

func newBody(pos mgl64.Vec3, half, mass float64) *physics.BodyState {
	return &physics.BodyState{
		Pos:           pos,
		Rot:           mgl64.QuatIdent(),
		Half:          half,
		Mass:          mass,
		Friction:      0.5,
		AngularFactor: 0.5,
	}
}

func step(t *testing.T, e *Engine, n int) {
	t.Helper()
	for range n {
		if err := e.Step(time.Second / 20); err != nil {
			t.Fatalf("Step() = %v", err)
		}
	}
}

func TestStepFallAndRest(t *testing.T) {
	e := Config{World: floorWorld{}}.New()
	s := newBody(mgl64.Vec3{0.5, 5.5, 0.5}, 0.5, 1)
	e.Add(s)

	step(t, e, 400)

	if !e.Resting(s) {
		t.Fatalf("body not resting after settling, pos %v vel %v", s.Pos, s.Vel)
	}
	// The floor surface is at height 1; a body with a half extent of 0.5
	// rests with its centre at 1.5.
	if math.Abs(s.Pos[1]-1.5) > 0.05 {
		t.Fatalf("rest height = %v, want about 1.5", s.Pos[1])
	}
	if s.Vel != (mgl64.Vec3{}) {
		t.Fatalf("resting body has velocity %v", s.Vel)
	}
}

func TestWakeWithin(t *testing.T) {
	e := Config{World: floorWorld{}}.New()
	s := newBody(mgl64.Vec3{0.5, 2, 0.5}, 0.5, 1)
	e.Add(s)
	step(t, e, 400)
	if !e.Resting(s) {
		t.Fatalf("body not resting before wake")
	}

	e.WakeWithin(cube.Box(0, 1, 0, 1, 2, 1))
	if e.Resting(s) {
		t.Fatalf("body still resting after WakeWithin on its bounds")
	}

	step(t, e, 400)
	if !e.Resting(s) {
		t.Fatalf("woken body never settled again")
	}
	e.WakeWithin(cube.Box(100, 1, 100, 101, 2, 101))
	if !e.Resting(s) {
		t.Fatalf("body woken by a far-away volume")
	}
}

func TestImpulseWakes(t *testing.T) {
	e := Config{World: floorWorld{}}.New()
	s := newBody(mgl64.Vec3{0.5, 2, 0.5}, 0.5, 1)
	e.Add(s)
	step(t, e, 400)

	e.Impulse(s, mgl64.Vec3{0, 8, 0})
	if e.Resting(s) {
		t.Fatalf("body still resting after impulse")
	}
	if want := (mgl64.Vec3{0, 8, 0}); !s.Vel.ApproxEqual(want) {
		t.Fatalf("velocity after impulse = %v, want %v", s.Vel, want)
	}
}

func TestRestingUnknownBody(t *testing.T) {
	e := Config{}.New()
	if e.Resting(newBody(mgl64.Vec3{}, 0.5, 1)) {
		t.Fatalf("body never added reported as resting")
	}
}

func TestAddRemoveIdempotent(t *testing.T) {
	e := Config{}.New()
	s := newBody(mgl64.Vec3{}, 0.5, 1)
	e.Add(s)
	e.Add(s)
	if n := e.BodyCount(); n != 1 {
		t.Fatalf("BodyCount() = %v after double Add, want 1", n)
	}
	e.Remove(s)
	e.Remove(s)
	if n := e.BodyCount(); n != 0 {
		t.Fatalf("BodyCount() = %v after double Remove, want 0", n)
	}
}

func TestStepSeparatesOverlap(t *testing.T) {
	e := Config{}.New()
	a := newBody(mgl64.Vec3{0, 10, 0}, 0.5, 1)
	b := newBody(mgl64.Vec3{0.6, 10, 0}, 0.5, 1)
	e.Add(a)
	e.Add(b)

	step(t, e, 1)

	// Equal masses split the 0.4 overlap evenly along the X axis.
	if math.Abs(a.Pos[0]+0.2) > 1e-9 || math.Abs(b.Pos[0]-0.8) > 1e-9 {
		t.Fatalf("positions after separation = %v, %v, want x -0.2 and 0.8", a.Pos, b.Pos)
	}
	if gap := b.AABB().Min()[0] - a.AABB().Max()[0]; gap < -1e-9 {
		t.Fatalf("bodies still overlap by %v after separation", -gap)
	}
}

func TestStepSeparatesAgainstImmovable(t *testing.T) {
	e := Config{}.New()
	anchor := newBody(mgl64.Vec3{0, 10, 0}, 0.5, 0)
	b := newBody(mgl64.Vec3{0.6, 10, 0}, 0.5, 1)
	e.Add(anchor)
	e.Add(b)

	step(t, e, 1)

	if anchor.Pos != (mgl64.Vec3{0, 10, 0}) {
		t.Fatalf("immovable body moved to %v", anchor.Pos)
	}
	if math.Abs(b.Pos[0]-1.0) > 1e-9 {
		t.Fatalf("movable body at x %v, want 1.0: it takes the full push", b.Pos[0])
	}
}

func TestStepFreezesNonFinite(t *testing.T) {
	e := Config{}.New()
	s := newBody(mgl64.Vec3{}, 0.5, 1)
	s.Vel = mgl64.Vec3{math.NaN(), 0, 0}
	e.Add(s)

	if err := e.Step(time.Second / 20); err == nil {
		t.Fatalf("Step() = nil error, want a corrupted-state fault")
	}
	if !e.Resting(s) {
		t.Fatalf("corrupted body not frozen")
	}
	if s.Vel != (mgl64.Vec3{}) || s.Ang != (mgl64.Vec3{}) {
		t.Fatalf("corrupted body keeps velocity %v, %v", s.Vel, s.Ang)
	}
}

func TestStepZeroDelta(t *testing.T) {
	e := Config{}.New()
	s := newBody(mgl64.Vec3{0, 10, 0}, 0.5, 1)
	e.Add(s)
	if err := e.Step(0); err != nil {
		t.Fatalf("Step(0) = %v", err)
	}
	if s.Pos != (mgl64.Vec3{0, 10, 0}) {
		t.Fatalf("body moved on a zero-duration step")
	}
}
