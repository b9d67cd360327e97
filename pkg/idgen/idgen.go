package idgen

import (
	"sync"
	"time"
)

// Generator issues process-unique, strictly increasing int64 identifiers.
// Ids are seeded from wall-clock milliseconds so they double as a
// creation-time tiebreaker, but two calls in the same millisecond still get
// distinct values: the counter never moves backwards and never repeats.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is used by tests to pin the wall clock
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the next identifier. It cannot fail.
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
