package analytics

import (
	"fmt"
	"math"
	"time"

	"goalpulse/internal/model"
	"goalpulse/internal/temporal"
)

// Urgency is the coarse-grained severity attached to the focus goal.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// FocusGoal is the single goal most deserving of attention right now,
// together with the evidence used to select it. Recomputed on every pass,
// never persisted.
type FocusGoal struct {
	Goal             model.Goal `json:"goal"`
	TotalTasks       int        `json:"totalTasks"`
	CompletedTasks   int        `json:"completedTasks"`
	Score            float64    `json:"priorityScore"`
	Progress         float64    `json:"progressPercent"`
	ExpectedProgress float64    `json:"expectedProgress"`
	DaysRemaining    int        `json:"daysRemaining"`
	TasksRemaining   int        `json:"tasksRemaining"`
	Urgency          Urgency    `json:"urgencyLevel"`
	Reason           string     `json:"reason"`
}

// PickFocusGoal ranks active goals by urgency and returns the highest-scoring
// one, or nil when no goal has incomplete tasks. Goals without tasks, and
// goals already at 100%, are excluded before scoring. Ties keep the earlier
// goal in input order.
func PickFocusGoal(goals []model.Goal, totals map[string]TaskTotals, now time.Time) *FocusGoal {
	var best *FocusGoal
	for _, goal := range goals {
		if goal.Status != model.GoalActive {
			continue
		}
		tt := totals[goal.ID]
		if tt.Total == 0 || tt.Remaining() == 0 {
			continue
		}
		candidate := scoreGoal(goal, tt, now)
		if best == nil || candidate.Score > best.Score {
			best = candidate
		}
	}
	return best
}

// scoreGoal applies the five-tier scoring ladder. Tiers are mutually
// exclusive and checked in fixed order; the first matching tier wins.
func scoreGoal(goal model.Goal, tt TaskTotals, now time.Time) *FocusGoal {
	daysRemaining := temporal.DaysRemaining(goal.TargetDate, now)
	remaining := tt.Remaining()
	progress := 100 * float64(tt.Completed) / float64(tt.Total)

	expected := 0.0
	if planned := temporal.DaysElapsed(goal.StartDate, goal.TargetDate); planned > 0 {
		elapsed := temporal.DaysElapsed(goal.StartDate, now)
		expected = clamp(float64(elapsed)/float64(planned)*100, 0, 100)
	}

	result := &FocusGoal{
		Goal:             goal,
		TotalTasks:       tt.Total,
		CompletedTasks:   tt.Completed,
		Progress:         progress,
		ExpectedProgress: expected,
		DaysRemaining:    daysRemaining,
		TasksRemaining:   remaining,
	}

	switch {
	case daysRemaining < 0:
		// Tier 1: overdue.
		result.Score = 100
		result.Urgency = UrgencyCritical
		result.Reason = fmt.Sprintf("Overdue by %d days with %d tasks remaining", -daysRemaining, remaining)

	case daysRemaining <= 7:
		// Tier 2: deadline imminent.
		result.Score = 80 + float64(7-daysRemaining)*2
		pace := float64(remaining) / math.Max(float64(daysRemaining), 1)
		if pace > 2 {
			result.Urgency = UrgencyCritical
		} else {
			result.Urgency = UrgencyHigh
		}
		result.Reason = fmt.Sprintf("Due in %d days with %d tasks remaining", daysRemaining, remaining)

	case expected > progress:
		// Tier 3: behind schedule.
		gap := expected - progress
		result.Score = 40 + math.Min(gap, 40)
		switch {
		case gap >= 25:
			result.Urgency = UrgencyCritical
		case gap >= 10:
			result.Urgency = UrgencyHigh
		default:
			result.Urgency = UrgencyMedium
		}
		result.Reason = fmt.Sprintf("Progress is %.0f%% but should be around %.0f%% by now", progress, expected)

	case progress == 0:
		// Tier 4: not started.
		result.Score = 35
		result.Urgency = UrgencyMedium
		result.Reason = fmt.Sprintf("Not started yet, %d tasks waiting", remaining)

	default:
		// Tier 5: on track.
		result.Score = (100 - progress) / 100 * 30
		result.Urgency = UrgencyLow
		result.Reason = fmt.Sprintf("On track at %.0f%%, keep the momentum", progress)
	}

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
