package clocks

import (
	"time"
)

// Monotonic measures time since its creation. Readings never decrease.
type Monotonic struct {
	startTime time.Time
}

// NewMonotonic creates a clock whose epoch is now.
func NewMonotonic() *Monotonic {
	return &Monotonic{
		startTime: time.Now(),
	}
}

// Seconds returns the time elapsed since the clock was created.
func (c *Monotonic) Seconds() float64 {
	return time.Since(c.startTime).Seconds()
}

// Sleep blocks for at least msecs milliseconds.
func Sleep(msecs uint32) {
	time.Sleep(time.Duration(msecs) * time.Millisecond)
}
