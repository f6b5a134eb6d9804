package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze layer timestamps.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used to stamp render passes. Pass nil to
// reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package time source.
func Now() time.Time {
	return clock.Now()
}

// Since returns the time elapsed since t on the package time source.
func Since(t time.Time) time.Duration {
	return clock.Since(t)
}
