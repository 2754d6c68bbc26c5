package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the session
// Implementations must be monotonic non-decreasing
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// Elapsed returns the time passed since t0, never negative
func Elapsed(p TimeProvider, t0 time.Time) time.Duration {
	return sinceClamped(p.Now(), t0)
}

func sinceClamped(now, t0 time.Time) time.Duration {
	d := now.Sub(t0)
	if d < 0 {
		return 0
	}
	return d
}

// ManualClock only moves when told to; tests drive sessions with it
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock reading start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to t unless t lies in the past
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	if t.After(c.now) {
		c.now = t
	}
	c.mu.Unlock()
}

// Advance moves forward by d; negative durations are ignored
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
