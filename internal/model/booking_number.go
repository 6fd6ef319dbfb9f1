package model

import (
	"fmt"
	"sync"
	"time"
)

// bookingNumberPrefix tags receipt numbers issued by this system.
const bookingNumberPrefix = "BK-"

// BookingNumberGenerator issues globally unique booking numbers derived
// from a high-resolution creation timestamp, with no central coordination.
//
// Wall-clock nanoseconds alone can collide under rapid succession (and can
// go backwards across clock adjustments), so the generator keeps a
// watermark of the last issued value and bumps past it when the clock
// hasn't advanced. Issued values are strictly increasing within a process.
//
// Thread-safety: Next is safe for concurrent use.
type BookingNumberGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewBookingNumberGenerator creates a generator reading the system clock.
func NewBookingNumberGenerator() *BookingNumberGenerator {
	return &BookingNumberGenerator{now: time.Now}
}

// NewBookingNumberGeneratorAt creates a generator with an injected clock.
// Used in tests to exercise the collision watermark deterministically.
func NewBookingNumberGeneratorAt(now func() time.Time) *BookingNumberGenerator {
	return &BookingNumberGenerator{now: now}
}

// Next returns the next booking number, e.g. "BK-1756250000123456789".
// Numbers issued by one generator are pairwise distinct even when created
// in rapid succession.
func (g *BookingNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ns := g.now().UnixNano()
	if ns <= g.last {
		ns = g.last + 1
	}
	g.last = ns
	return fmt.Sprintf("%s%d", bookingNumberPrefix, ns)
}
