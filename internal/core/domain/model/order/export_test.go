package order

import "time"

// SetClock replaces the aggregate clock for the duration of a test.
func SetClock(clock func() time.Time) (restore func()) {
	prev := now
	now = clock
	return func() { now = prev }
}
