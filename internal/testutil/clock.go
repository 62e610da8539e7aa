package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable clock for tests.
//
// Unlike repo.SystemClock it never moves on its own: time advances only
// through Advance or Set, so timestamp assertions are exact and the same
// test run twice produces identical documents.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu   sync.Mutex
	now  time.Time
	tick time.Duration
}

// NewFixedClock creates a clock frozen at start.
func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{now: start}
}

// NewTickingClock creates a clock that advances by tick on every Now call,
// so consecutive stamps are distinct but still deterministic.
func NewTickingClock(start time.Time, tick time.Duration) *FixedClock {
	return &FixedClock{now: start, tick: tick}
}

// Now implements repo.Clock.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.tick)
	return t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to an absolute instant.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
