package physics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

const tpsSampleSize = 20

// Ticker drives a Simulation at a fixed interval on its own goroutine,
// passing the measured time between ticks to Advance. It keeps a moving
// ticks-per-second average and warns once when the Simulation can no longer
// keep up with the interval.
type Ticker struct {
	s        *Simulation
	interval time.Duration

	tps     atomic.Uint64
	closing chan struct{}
	o       sync.Once
	running sync.WaitGroup
}

// NewTicker creates a Ticker for the Simulation passed and starts ticking it
// every interval. Intervals of 0 or lower default to 20 ticks per second.
func NewTicker(s *Simulation, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second / 20
	}
	t := &Ticker{s: s, interval: interval, closing: make(chan struct{})}
	t.running.Add(1)
	go t.tickLoop()
	return t
}

// TPS returns the current ticks-per-second average of the Ticker. It returns
// 0 until the first sample window completes.
func (t *Ticker) TPS() float64 {
	return math.Float64frombits(t.tps.Load())
}

// Close stops the Ticker. It blocks until the final tick has completed.
func (t *Ticker) Close() error {
	t.o.Do(func() {
		close(t.closing)
	})
	t.running.Wait()
	return nil
}

// tickLoop ticks the Simulation until the Ticker is closed, sampling the
// average tick rate over windows of tpsSampleSize ticks.
func (t *Ticker) tickLoop() {
	defer t.running.Done()

	tc := time.NewTicker(t.interval)
	defer tc.Stop()

	nominal := 1 / t.interval.Seconds()
	lastTick := time.Now()
	var (
		durationSum time.Duration
		ticksCount  int
		warned      bool
	)
	for {
		select {
		case <-tc.C:
			tickStart := time.Now()
			duration := tickStart.Sub(lastTick)
			lastTick = tickStart
			if duration > 0 {
				durationSum += duration
				ticksCount++
				if ticksCount >= tpsSampleSize {
					avg := durationSum / time.Duration(ticksCount)
					tps := 1.0 / avg.Seconds()
					t.tps.Store(math.Float64bits(tps))
					if tps < nominal*0.95 {
						if !warned {
							t.s.conf.Log.Warn("physics: tick rate dropped below target", "tps", tps, "target", nominal)
							warned = true
						}
					} else if warned {
						warned = false
					}
					durationSum, ticksCount = 0, 0
				}
			}
			t.s.Advance(duration)
		case <-t.closing:
			return
		}
	}
}
