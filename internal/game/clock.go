package game

import "time"

// Clock supplies the monotonic simulation time passed to Engine.Step.
type Clock interface {
	Now() time.Duration
}

// SystemClock reports wall time elapsed since it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }

// ManualClock only moves when told to. Used by tests and the fixed-step
// headless runner.
type ManualClock struct {
	now time.Duration
}

func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.now += d
	return c.now
}

func (c *ManualClock) Set(now time.Duration) { c.now = now }
