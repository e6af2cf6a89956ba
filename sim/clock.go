package sim

import "time"

// DeltaSource supplies the elapsed time, in seconds, fed into each step.
type DeltaSource interface {
	// Tick returns the time elapsed since the previous Tick and starts a
	// new interval.
	Tick() float64
}

// Clock measures wall time between steps. The zero value is not usable;
// create one with NewClock.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock creates a clock that starts measuring immediately.
func NewClock() *Clock {
	return NewClockWithNow(time.Now)
}

// NewClockWithNow creates a clock reading time from now.
func NewClockWithNow(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Delta returns the seconds elapsed since the last Restart without
// restarting. A clock that went backwards reports zero.
func (c *Clock) Delta() float64 {
	d := c.now().Sub(c.last).Seconds()
	if d < 0 {
		return 0
	}
	return d
}

// Restart begins a new interval.
func (c *Clock) Restart() {
	c.last = c.now()
}

// Tick implements DeltaSource.
func (c *Clock) Tick() float64 {
	d := c.Delta()
	c.Restart()
	return d
}

// FixedClock returns the same step every tick, for reproducible runs.
type FixedClock struct {
	Step float64
}

// Tick implements DeltaSource.
func (f FixedClock) Tick() float64 {
	return f.Step
}
