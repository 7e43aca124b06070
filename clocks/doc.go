// Package clocks provides the platform time sources.
//
// The monotonic clock reports seconds elapsed since the clock was created,
// with nanosecond resolution, and never moves backward. Sleep yields the
// calling goroutine for at least the requested number of milliseconds.
package clocks
