package mocks

import (
	"time"

	"github.com/mcoot/brainplay/internal/dependencies/clock"
)

// MockClock returns a controlled time. With a non-zero Step every call to Now
// moves the clock forward, so consecutive rounds get distinct timestamps.
type MockClock struct {
	CurrentTime time.Time
	Step        time.Duration
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked time, then applies Step
func (c *MockClock) Now() time.Time {
	now := c.CurrentTime
	c.CurrentTime = c.CurrentTime.Add(c.Step)
	return now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
