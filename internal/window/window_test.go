package window

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2024, time.January, 1, h, m, 0, 0, time.UTC)
}

func TestNextStart(t *testing.T) {
	t.Parallel()
	w := Window{StartHour: 18, EndHour: 22}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "morning, same day", now: at(10, 0), want: at(18, 0)},
		{name: "exactly at start, next day", now: at(18, 0), want: at(18, 0).AddDate(0, 0, 1)},
		{name: "after start, next day", now: at(20, 0), want: at(18, 0).AddDate(0, 0, 1)},
		{name: "one second before", now: time.Date(2024, 1, 1, 17, 59, 59, 0, time.UTC), want: at(18, 0)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := w.NextStart(tt.now); !got.Equal(tt.want) {
				t.Fatalf("NextStart(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestNextAlwaysWithin24h(t *testing.T) {
	t.Parallel()
	for hour := 0; hour <= 24; hour++ {
		w := Window{StartHour: hour, EndHour: (hour + 1) % 24}
		for nowH := 0; nowH < 24; nowH++ {
			for _, nowM := range []int{0, 1, 30, 59} {
				now := at(nowH, nowM)
				for _, next := range []time.Time{w.NextStart(now), w.NextEnd(now)} {
					d := next.Sub(now)
					if d <= 0 || d > 24*time.Hour {
						t.Fatalf("hour=%d now=%v: next=%v, delta %v outside (0, 24h]", hour, now, next, d)
					}
				}
			}
		}
	}
}

func TestInWindow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		w    Window
		now  time.Time
		want bool
	}{
		{name: "before window", w: Window{18, 22}, now: at(10, 0), want: false},
		{name: "inside window", w: Window{18, 22}, now: at(20, 0), want: true},
		{name: "at open", w: Window{18, 22}, now: at(18, 0), want: true},
		{name: "at close", w: Window{18, 22}, now: at(22, 0), want: false},
		{name: "after close", w: Window{18, 22}, now: at(23, 0), want: false},
		{name: "wrap, late evening", w: Window{22, 2}, now: at(23, 30), want: true},
		{name: "wrap, early morning", w: Window{22, 2}, now: at(1, 0), want: true},
		{name: "wrap, midday", w: Window{22, 2}, now: at(12, 0), want: false},
		{name: "wrap, at close", w: Window{22, 2}, now: at(2, 0), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.w.InWindow(tt.now); got != tt.want {
				t.Fatalf("InWindow(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestScenarioTimestamps(t *testing.T) {
	t.Parallel()
	w := Window{StartHour: 18, EndHour: 22}

	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	start := w.NextStart(now)
	if got := start.Unix(); got != 1704132000 {
		t.Errorf("NextStart unix = %d, want 1704132000", got)
	}
	if w.InWindow(now) {
		t.Error("InWindow(10:00) = true, want false")
	}

	now = time.Date(2024, time.January, 1, 20, 0, 0, 0, time.UTC)
	end := w.NextEnd(now)
	if got := end.Unix(); got != 1704146400 {
		t.Errorf("NextEnd unix = %d, want 1704146400", got)
	}
	if !w.InWindow(now) {
		t.Error("InWindow(20:00) = false, want true")
	}
}

func TestHour24Normalizes(t *testing.T) {
	t.Parallel()
	w := Window{StartHour: 24, EndHour: 4}
	now := at(10, 0)
	// Hour 24 is next-day midnight.
	want := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if got := w.NextStart(now); !got.Equal(want) {
		t.Fatalf("NextStart = %v, want %v", got, want)
	}
}

func TestFixedClock(t *testing.T) {
	t.Parallel()
	ts := at(13, 37)
	clk := Fixed(ts)
	if !clk().Equal(ts) {
		t.Fatal("Fixed clock drifted")
	}
}
