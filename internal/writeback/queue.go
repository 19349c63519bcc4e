package writeback

import (
	"sync"

	"github.com/agentic-research/spyglass/internal/locator"
)

// Change is one proposed write produced by a widget.
type Change struct {
	Widget  string
	Locator locator.Locator
	Value   float64
}

// Queue accumulates changes for one cycle. It is drained exactly once per
// cycle by the write phase.
type Queue struct {
	mu      sync.Mutex
	pending []Change
}

// Push appends c.
func (q *Queue) Push(c Change) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, c)
}

// Drain returns the queued changes in push order and empties the queue.
func (q *Queue) Drain() []Change {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len reports the number of queued changes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
