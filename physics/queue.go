package physics

import "sync"

// insertionQueue stages bodies created by producers until the tick driver
// admits them into the registry and the engine. Bodies may be enqueued from
// any goroutine; draining happens once per tick, from the tick driver only.
type insertionQueue struct {
	mu     sync.Mutex
	bodies []*Body
}

// enqueue appends a body to the tail of the queue. It never blocks beyond
// the queue lock, so an enqueue racing a drain lands fully before or fully
// after it.
func (q *insertionQueue) enqueue(b *Body) {
	q.mu.Lock()
	q.bodies = append(q.bodies, b)
	q.mu.Unlock()
}

// drainAll removes and returns every queued body in the order it was
// enqueued, leaving the queue empty.
func (q *insertionQueue) drainAll() []*Body {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.bodies) == 0 {
		return nil
	}
	drained := q.bodies
	q.bodies = nil
	return drained
}
