// Package testutil provides shared test helpers.
package testutil

import (
	"sync"
	"time"
)

// Clock is a manually advanced time source for tests.
//
// Production code reads time through an injected clock so that
// deadline-based behavior (the scan suppression window) can be exercised
// deterministically: tests advance the clock instead of sleeping.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the clock's current instant without advancing it.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Monotonic: d must not be negative.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
