package monitor

import "time"

// Clock abstracts the time source so simulated time-shifts and deterministic
// tests never sleep against the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}
