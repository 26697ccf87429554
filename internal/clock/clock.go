package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// RemainingSeconds returns the whole seconds left until start, rounded up
// and clamped at zero.
func RemainingSeconds(start, now time.Time) int64 {
	d := start.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
