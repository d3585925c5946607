// Package analytics derives display statistics, streaks and the focus-goal
// recommendation from a snapshot of goal and task records. Everything here is
// a pure function of the snapshot and an explicit reference time; nothing is
// persisted.
package analytics

import (
	"math"
	"sort"
	"time"

	"goalpulse/internal/model"
	"goalpulse/internal/temporal"
)

// TaskTotals holds the recomputed per-goal task counters. The snapshot
// counters stored on the Goal record may be stale, so these are always
// derived from the live task list.
type TaskTotals struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Percent returns the completion percentage, 0 for a goal without tasks.
func (t TaskTotals) Percent() int {
	if t.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(t.Completed) / float64(t.Total)))
}

// Remaining returns the number of incomplete tasks.
func (t TaskTotals) Remaining() int {
	return t.Total - t.Completed
}

// GoalTaskTotals recomputes task counters per goal from the task list.
func GoalTaskTotals(tasks []model.Task) map[string]TaskTotals {
	totals := make(map[string]TaskTotals)
	for _, task := range tasks {
		tt := totals[task.GoalID]
		tt.Total++
		if task.Done() {
			tt.Completed++
		}
		totals[task.GoalID] = tt
	}
	return totals
}

// OverallProgress returns round(100 * completed / total) across all tasks,
// 0 when there are no tasks.
func OverallProgress(tasks []model.Task) int {
	total := 0
	completed := 0
	for _, task := range tasks {
		total++
		if task.Done() {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// WeeklyChange returns the percentage delta between tasks completed this ISO
// week and last ISO week, relative to last week's count. When last week had
// no completions the delta is 100 if this week has any, else 0.
func WeeklyChange(tasks []model.Task, now time.Time) int {
	thisWeekStart := temporal.WeekStart(now)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)

	thisWeek := 0
	lastWeek := 0
	for _, task := range tasks {
		if !task.Done() || task.CompletedAt == nil {
			continue
		}
		at := *task.CompletedAt
		switch {
		case !at.Before(thisWeekStart):
			thisWeek++
		case !at.Before(lastWeekStart):
			lastWeek++
		}
	}

	if lastWeek == 0 {
		if thisWeek > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(thisWeek-lastWeek) / float64(lastWeek) * 100))
}

// TimeShare is one goal's slice of the time worked during the current week.
// Percent is the raw share of the grand total; any minimum visual floor is a
// presentation concern and applied by the caller.
type TimeShare struct {
	GoalID   string         `json:"goalId"`
	Title    string         `json:"title"`
	Category model.Category `json:"category"`
	Minutes  int            `json:"minutes"`
	Percent  float64        `json:"percent"`
}

// WeeklyTimeDistribution sums worked minutes per goal over tasks completed
// since the current week start. Goals without completions this week are
// omitted. Results are sorted by minutes descending, ties by title.
func WeeklyTimeDistribution(goals []model.Goal, tasks []model.Task, now time.Time) []TimeShare {
	weekStart := temporal.WeekStart(now)

	minutes := make(map[string]int)
	grandTotal := 0
	for _, task := range tasks {
		if !task.Done() || task.CompletedAt == nil || task.CompletedAt.Before(weekStart) {
			continue
		}
		m := task.WorkedMinutes()
		minutes[task.GoalID] += m
		grandTotal += m
	}

	var shares []TimeShare
	for _, goal := range goals {
		m, ok := minutes[goal.ID]
		if !ok || m == 0 {
			continue
		}
		share := TimeShare{
			GoalID:   goal.ID,
			Title:    goal.Title,
			Category: goal.Category,
			Minutes:  m,
		}
		if grandTotal > 0 {
			share.Percent = math.Round(float64(m)/float64(grandTotal)*1000) / 10
		}
		shares = append(shares, share)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Minutes != shares[j].Minutes {
			return shares[i].Minutes > shares[j].Minutes
		}
		return shares[i].Title < shares[j].Title
	})
	return shares
}

// WeekMatrix is the per-goal per-weekday completion count for the current
// week. MaxCell is the largest single cell across all goals (minimum 1) and
// is used by the UI to normalize heat intensity.
type WeekMatrix struct {
	ByGoal  map[string][7]int `json:"byGoal"`
	MaxCell int               `json:"maxCell"`
}

// CompletionMatrix buckets this week's completions by weekday per goal.
func CompletionMatrix(goals []model.Goal, tasks []model.Task, now time.Time) WeekMatrix {
	weekStart := temporal.WeekStart(now)

	byGoal := make(map[string][]time.Time)
	for _, task := range tasks {
		if !task.Done() || task.CompletedAt == nil {
			continue
		}
		byGoal[task.GoalID] = append(byGoal[task.GoalID], *task.CompletedAt)
	}

	matrix := WeekMatrix{ByGoal: make(map[string][7]int), MaxCell: 1}
	for _, goal := range goals {
		buckets := temporal.BucketByWeekday(byGoal[goal.ID], weekStart)
		matrix.ByGoal[goal.ID] = buckets
		for _, count := range buckets {
			if count > matrix.MaxCell {
				matrix.MaxCell = count
			}
		}
	}
	return matrix
}

// Summary bundles the headline numbers for the dashboard.
type Summary struct {
	TotalGoals      int    `json:"totalGoals"`
	ActiveGoals     int    `json:"activeGoals"`
	CompletedGoals  int    `json:"completedGoals"`
	TotalTasks      int    `json:"totalTasks"`
	CompletedTasks  int    `json:"completedTasks"`
	OverallProgress int    `json:"overallProgress"`
	WeeklyChange    int    `json:"weeklyChange"`
	StreakDays      int    `json:"streakDays"`
	LastActiveDay   string `json:"lastActiveDay,omitempty"`
}

// Summarize computes the aggregate statistics for a snapshot.
func Summarize(goals []model.Goal, tasks []model.Task, now time.Time) Summary {
	s := Summary{
		TotalGoals:      len(goals),
		OverallProgress: OverallProgress(tasks),
		WeeklyChange:    WeeklyChange(tasks, now),
	}
	for _, goal := range goals {
		switch goal.Status {
		case model.GoalActive:
			s.ActiveGoals++
		case model.GoalCompleted:
			s.CompletedGoals++
		}
	}
	for _, task := range tasks {
		s.TotalTasks++
		if task.Done() {
			s.CompletedTasks++
		}
	}
	streak := CurrentStreak(tasks)
	s.StreakDays = streak.Days
	s.LastActiveDay = streak.LastDay
	return s
}
