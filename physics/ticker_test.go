package physics

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTickerDrivesSimulation(t *testing.T) {
	st := newSimTest(t)
	st.sim.CreateTemporary(mgl64.Vec3{}, st.stone, Half)

	ticker := NewTicker(st.sim, time.Millisecond*2)
	time.Sleep(time.Millisecond * 100)
	if err := ticker.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	st.engine.mu.Lock()
	steps := st.engine.steps
	st.engine.mu.Unlock()
	if steps == 0 {
		t.Fatalf("engine never stepped")
	}
	if n := st.sim.BodyCount(); n != 1 {
		t.Fatalf("BodyCount() = %v after ticking, want 1", n)
	}
}

func TestTickerCloseIdempotent(t *testing.T) {
	st := newSimTest(t)
	ticker := NewTicker(st.sim, time.Millisecond)
	ticker.Close()
	ticker.Close()
}
