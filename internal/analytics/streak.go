package analytics

import (
	"sort"

	"goalpulse/internal/model"
	"goalpulse/internal/temporal"
)

// Streak describes the run of consecutive calendar days, ending at the most
// recent completion, on which at least one task was completed. The run is
// reported even when its last day is historical; LastDay lets callers qualify
// a stale streak in the UI instead of presenting it as current.
type Streak struct {
	Days    int    `json:"days"`
	LastDay string `json:"lastDay,omitempty"`
}

// CurrentStreak derives the streak from task completion timestamps. Returns
// a zero streak when no task has ever been completed.
func CurrentStreak(tasks []model.Task) Streak {
	seen := make(map[string]bool)
	for _, task := range tasks {
		if !task.Done() || task.CompletedAt == nil {
			continue
		}
		seen[temporal.DayKey(*task.CompletedAt)] = true
	}
	if len(seen) == 0 {
		return Streak{}
	}

	days := make([]string, 0, len(seen))
	for key := range seen {
		days = append(days, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	streak := Streak{Days: 1, LastDay: days[0]}
	prev := temporal.ParseDayKey(days[0])
	for _, key := range days[1:] {
		cur := temporal.ParseDayKey(key)
		if !prev.AddDate(0, 0, -1).Equal(cur) {
			break
		}
		streak.Days++
		prev = cur
	}
	return streak
}
