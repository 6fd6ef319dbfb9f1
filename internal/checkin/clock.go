package checkin

import "time"

// Clock abstracts the time source for the suppression window, so the
// debounce deadline can be tested against a manually advanced clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system monotonic clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }
