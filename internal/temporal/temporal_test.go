package temporal

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	// 2026-01-12 is a Monday.
	monday := date(2026, time.January, 12)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", monday},
		{"midweek", date(2026, time.January, 14)},
		{"saturday", date(2026, time.January, 17)},
		{"sunday rolls back six days", date(2026, time.January, 18)},
	}
	for _, tc := range cases {
		got := WeekStart(tc.in)
		if !got.Equal(monday) {
			t.Errorf("%s: WeekStart(%s) = %s, want %s", tc.name, tc.in, got, monday)
		}
	}

	// A timestamp with a time-of-day component still snaps to midnight.
	noon := time.Date(2026, time.January, 14, 12, 30, 0, 0, time.UTC)
	if got := WeekStart(noon); !got.Equal(monday) {
		t.Errorf("WeekStart(noon) = %s, want %s", got, monday)
	}
}

func TestDaysRemaining(t *testing.T) {
	now := date(2026, time.January, 14)

	if got := DaysRemaining(date(2026, time.January, 17), now); got != 3 {
		t.Errorf("Expected 3 days remaining, got %d", got)
	}
	if got := DaysRemaining(now, now); got != 0 {
		t.Errorf("Expected 0 days remaining for same instant, got %d", got)
	}
	if got := DaysRemaining(date(2026, time.January, 11), now); got != -3 {
		t.Errorf("Expected -3 for overdue target, got %d", got)
	}
	// A partial day still counts as one remaining day.
	if got := DaysRemaining(now.Add(6*time.Hour), now); got != 1 {
		t.Errorf("Expected partial day to round up to 1, got %d", got)
	}
}

func TestDaysElapsed(t *testing.T) {
	start := date(2026, time.January, 1)
	if got := DaysElapsed(start, date(2026, time.January, 15)); got != 14 {
		t.Errorf("Expected 14 elapsed days, got %d", got)
	}
	if got := DaysElapsed(start, start); got != 0 {
		t.Errorf("Expected 0 elapsed days, got %d", got)
	}
	// Clock skew must not produce negative elapsed time.
	if got := DaysElapsed(start, start.Add(-48*time.Hour)); got != 0 {
		t.Errorf("Expected floor at 0, got %d", got)
	}
}

func TestBucketByWeekday(t *testing.T) {
	weekStart := date(2026, time.January, 12) // Monday

	times := []time.Time{
		weekStart.Add(9 * time.Hour),                   // Monday
		weekStart.Add(10 * time.Hour),                  // Monday
		weekStart.AddDate(0, 0, 2).Add(18 * time.Hour), // Wednesday
		weekStart.AddDate(0, 0, 6).Add(1 * time.Hour),  // Sunday
		weekStart.AddDate(0, 0, -1),                    // previous Sunday, out of range
		weekStart.AddDate(0, 0, 7),                     // next Monday, out of range
	}

	got := BucketByWeekday(times, weekStart)
	want := [7]int{2, 0, 1, 0, 0, 0, 1}
	if got != want {
		t.Errorf("BucketByWeekday = %v, want %v", got, want)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	ts := time.Date(2026, time.March, 5, 23, 59, 0, 0, time.UTC)
	key := DayKey(ts)
	if key != "2026-03-05" {
		t.Fatalf("DayKey = %q", key)
	}
	back := ParseDayKey(key)
	if !SameCalendarDay(ts, back) {
		t.Errorf("Round trip lost the calendar day: %s vs %s", ts, back)
	}
	if !ParseDayKey("garbage").IsZero() {
		t.Error("Expected zero time for malformed key")
	}
}
