package crontime

import (
	"testing"

	"github.com/robfig/cron/v3"
)

func TestExpressions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		sched   Schedule
		refresh string
		notify  string
		end     string
	}{
		{
			name:    "evening window with shift",
			sched:   Schedule{StartHour: 18, EndHour: 22, ShiftMin: 10},
			refresh: "0 * * * * *",
			notify:  "40 50 17 * * *",
			end:     "20 0 22 * * *",
		},
		{
			name:    "zero shift fires at window open",
			sched:   Schedule{StartHour: 18, EndHour: 22, ShiftMin: 0},
			refresh: "0 * * * * *",
			notify:  "40 0 18 * * *",
			end:     "20 0 22 * * *",
		},
		{
			name:    "midnight start wraps notify hour to 23",
			sched:   Schedule{StartHour: 0, EndHour: 4, ShiftMin: 15},
			refresh: "0 * * * * *",
			notify:  "40 45 23 * * *",
			end:     "20 0 4 * * *",
		},
		{
			name:    "one minute shift",
			sched:   Schedule{StartHour: 9, EndHour: 17, ShiftMin: 1},
			refresh: "0 * * * * *",
			notify:  "40 59 8 * * *",
			end:     "20 0 17 * * *",
		},
		{
			name:    "maximum shift",
			sched:   Schedule{StartHour: 9, EndHour: 17, ShiftMin: 59},
			refresh: "0 * * * * *",
			notify:  "40 1 8 * * *",
			end:     "20 0 17 * * *",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.sched.Refresh(); got != tt.refresh {
				t.Errorf("Refresh() = %q, want %q", got, tt.refresh)
			}
			if got := tt.sched.Notify(); got != tt.notify {
				t.Errorf("Notify() = %q, want %q", got, tt.notify)
			}
			if got := tt.sched.End(); got != tt.end {
				t.Errorf("End() = %q, want %q", got, tt.end)
			}
		})
	}
}

// Every expression the generator can emit for an in-range configuration must
// parse with the same seconds-enabled parser the scheduler uses.
func TestAllExpressionsParseable(t *testing.T) {
	t.Parallel()
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	for start := 0; start <= 23; start++ {
		for _, end := range []int{0, 1, 12, 23} {
			if start == end {
				continue
			}
			for shift := 0; shift <= 59; shift++ {
				s := Schedule{StartHour: start, EndHour: end, ShiftMin: shift}
				for _, expr := range []string{s.Refresh(), s.Notify(), s.End()} {
					if _, err := parser.Parse(expr); err != nil {
						t.Fatalf("Schedule%+v produced unparseable %q: %v", s, expr, err)
					}
				}
			}
		}
	}
}
