package clock

import "time"

// Clock provides the current time; session timestamps all come from here
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time without its monotonic reading, so values
// compare equal after a round trip through the store
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
