// Package crontime derives the three trigger schedules from the window
// configuration as 6-field cron expressions ("second minute hour dom month
// dow", the robfig/cron seconds-enabled form).
//
// The notify and end triggers carry fixed second offsets (40 and 20) so they
// never land on the same tick as the once-per-minute refresh.
package crontime

import "fmt"

// Schedule holds the window parameters the trigger expressions derive from.
// All values are validated by config before reaching here.
type Schedule struct {
	StartHour int
	EndHour   int
	ShiftMin  int
}

// Refresh fires every minute at second 0.
func (s Schedule) Refresh() string {
	return "0 * * * * *"
}

// Notify fires once per day, ShiftMin minutes before the window opens.
//
// With a positive shift the fire time is (StartHour-1):(60-ShiftMin); the
// hour is taken modulo 24 so a midnight start wraps to 23 instead of
// underflowing. With a zero shift the fire time is StartHour:00 sharp.
func (s Schedule) Notify() string {
	if s.ShiftMin == 0 {
		return fmt.Sprintf("40 0 %d * * *", s.StartHour)
	}
	hour := (s.StartHour - 1 + 24) % 24
	return fmt.Sprintf("40 %d %d * * *", 60-s.ShiftMin, hour)
}

// End fires once per day at EndHour:00:20.
func (s Schedule) End() string {
	return fmt.Sprintf("20 0 %d * * *", s.EndHour)
}
