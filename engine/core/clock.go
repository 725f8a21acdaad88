package core

import "time"

// Clock measures frame time. The zero value is stopped.
type Clock struct {
	now       func() time.Time
	startTime time.Time
	elapsed   float64
	previous  float64
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithSource returns a clock reading time from now, for tests.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Update samples the clock and returns the seconds since the previous
// Update. Stopped clocks return 0.
func (c *Clock) Update() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	c.previous = c.elapsed
	c.elapsed = c.now().Sub(c.startTime).Seconds()
	return c.elapsed - c.previous
}

// Start resets elapsed time and starts counting.
func (c *Clock) Start() {
	if c.now == nil {
		c.now = time.Now
	}
	c.startTime = c.now()
	c.elapsed = 0
	c.previous = 0
}

// Stop freezes the clock. Elapsed time is kept.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

// Elapsed returns the seconds between Start and the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
