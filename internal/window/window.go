// Package window models the daily Happy Hour interval in UTC.
package window

import "time"

// Clock supplies "now". Production code uses UTC; tests inject fixed times.
type Clock func() time.Time

// UTC is the production clock.
func UTC() time.Time { return time.Now().UTC() }

// Fixed returns a clock pinned to t, for tests.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Window is the daily [StartHour, EndHour) interval, hours in UTC.
// EndHour < StartHour means the window crosses midnight.
type Window struct {
	StartHour int
	EndHour   int
}

// NextStart returns the next UTC instant whose wall-clock hour is StartHour
// with zero minutes and seconds. If today's occurrence is not after now, it
// is tomorrow's. Hour 24 normalizes to 00:00 of the following day.
func (w Window) NextStart(now time.Time) time.Time {
	return nextAtHour(now, w.StartHour)
}

// NextEnd is NextStart for EndHour.
func (w Window) NextEnd(now time.Time) time.Time {
	return nextAtHour(now, w.EndHour)
}

// InWindow reports whether now lies inside the daily window. The upcoming
// end preceding the upcoming start is exactly the "inside" condition, and it
// holds for midnight-crossing windows without any case analysis.
func (w Window) InWindow(now time.Time) bool {
	return w.NextStart(now).After(w.NextEnd(now))
}

func nextAtHour(now time.Time, hour int) time.Time {
	now = now.UTC()
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}
