package mocks

import (
	"time"

	"github.com/mcoot/blokus-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	CurrentTime time.Time

	// Waits records every duration passed to After
	Waits []time.Duration
	// Block makes After return a channel that never fires
	Block bool
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// After advances the clock by d and returns an already-fired channel,
// or a channel that never fires when Block is set
func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.Waits = append(c.Waits, d)
	ch := make(chan time.Time, 1)
	if c.Block {
		return ch
	}
	c.Advance(d)
	ch <- c.CurrentTime
	return ch
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
