// Package temporal provides the pure date-math helpers the analytics engine
// is built on. Every function takes its reference time explicitly so results
// are deterministic under test.
package temporal

import (
	"math"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DaysRemaining returns the signed number of days between now and target,
// rounded up. Negative values mean the target has already passed. Callers
// that only display the value floor it at zero; the priority scorer relies
// on the sign to detect overdue goals.
func DaysRemaining(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24.0))
}

// DaysElapsed returns the number of whole days from start to now, never
// negative.
func DaysElapsed(start, now time.Time) int {
	days := int(math.Floor(now.Sub(start).Hours() / 24.0))
	if days < 0 {
		return 0
	}
	return days
}

// WeekStart returns the Monday 00:00:00 of the ISO week containing t.
// Go reports Sunday as weekday 0, so Sunday rolls back six days rather than
// forward one.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday -> 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
}

// WeekdayIndex returns the Monday-first index (0..6) for t.
func WeekdayIndex(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return weekday - 1
}

// BucketByWeekday counts timestamps per weekday for the week starting at
// weekStart. Index 0 is Monday. Timestamps outside the week are ignored.
func BucketByWeekday(times []time.Time, weekStart time.Time) [7]int {
	var buckets [7]int
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, ts := range times {
		if ts.Before(weekStart) || !ts.Before(weekEnd) {
			continue
		}
		buckets[WeekdayIndex(ts)]++
	}
	return buckets
}

// DayKey normalizes a timestamp to its calendar date as "YYYY-MM-DD".
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDayKey is the inverse of DayKey. Returns the zero time on malformed
// input.
func ParseDayKey(key string) time.Time {
	t, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SameCalendarDay reports whether a and b fall on the same calendar date.
func SameCalendarDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
