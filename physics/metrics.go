package physics

import "sync"

// Metrics tracks counters describing the lifecycle of loose block bodies.
// All methods are safe for concurrent use and may be called on a nil
// Metrics.
type Metrics struct {
	mu        sync.Mutex
	admitted  uint64
	evicted   uint64
	collected uint64
	rejected  uint64
	discarded uint64
	registry  int
}

// MetricsSnapshot is a point-in-time copy of all counters of a Metrics.
type MetricsSnapshot struct {
	// Admitted counts bodies drained from the insertion queue into the
	// registry.
	Admitted uint64
	// Evicted counts temporary bodies removed by the eviction pass.
	Evicted uint64
	// Collected counts bodies that reached an agent and were removed.
	Collected uint64
	// Rejected counts body creations refused for translucent block types.
	Rejected uint64
	// Discarded counts collected item representations that no container
	// retained and that were destroyed.
	Discarded uint64
	// RegistrySize is the amount of live bodies after the last tick.
	RegistrySize int
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Admitted:     m.admitted,
		Evicted:      m.evicted,
		Collected:    m.collected,
		Rejected:     m.rejected,
		Discarded:    m.discarded,
		RegistrySize: m.registry,
	}
}

func (m *Metrics) addAdmitted(n int) {
	if m == nil || n == 0 {
		return
	}
	m.mu.Lock()
	m.admitted += uint64(n)
	m.mu.Unlock()
}

func (m *Metrics) incEvicted() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.evicted++
	m.mu.Unlock()
}

func (m *Metrics) incCollected() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.collected++
	m.mu.Unlock()
}

func (m *Metrics) incRejected() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.rejected++
	m.mu.Unlock()
}

func (m *Metrics) incDiscarded() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.discarded++
	m.mu.Unlock()
}

func (m *Metrics) setRegistrySize(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.registry = n
	m.mu.Unlock()
}
