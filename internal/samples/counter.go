package samples

import "sync/atomic"

// Counter accumulates signed deltas. It is safe for concurrent use and its
// zero value is a counter starting at 0.
type Counter struct {
	total atomic.Int64
}

// NewCounter returns a counter starting at initial.
func NewCounter(initial int64) *Counter {
	c := &Counter{}
	c.total.Store(initial)
	return c
}

// Add adds delta and returns the value held before the addition.
func (c *Counter) Add(delta int64) int64 {
	return c.total.Add(delta) - delta
}

// Value returns the current total.
func (c *Counter) Value() int64 {
	return c.total.Load()
}
