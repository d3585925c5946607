// Package engine runs the analytics pass: snapshot load, aggregation, streak,
// priority scoring, then insights. The stages always run in that order within
// one pass; only the insights stage touches the network.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"goalpulse/internal/analytics"
	"goalpulse/internal/insights"
	"goalpulse/internal/model"
)

// Snapshot is the slice of the storage collaborator the engine reads. Both
// reads are full-collection; filtering happens here.
type Snapshot interface {
	ListGoals(ctx context.Context) ([]model.Goal, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
}

// Engine computes dashboards and insight requests from the stored records.
type Engine struct {
	db       Snapshot
	insights *insights.Manager
	now      func() time.Time
}

// New wires an engine. The insights manager may be nil when the remote
// service is not configured; Insights then serves static defaults.
func New(db Snapshot, mgr *insights.Manager) *Engine {
	return &Engine{db: db, insights: mgr, now: time.Now}
}

// GoalProgress is one goal's progress-bar line.
type GoalProgress struct {
	Goal      model.Goal `json:"goal"`
	Total     int        `json:"totalTasks"`
	Completed int        `json:"completedTasks"`
	Percent   int        `json:"percent"`
}

// Dashboard is the full analytics result handed to the presentation layer.
type Dashboard struct {
	Summary     analytics.Summary     `json:"summary"`
	TimeShares  []analytics.TimeShare `json:"timeShares"`
	Matrix      analytics.WeekMatrix  `json:"matrix"`
	Goals       []GoalProgress        `json:"goals"`
	Focus       *analytics.FocusGoal  `json:"focusGoal,omitempty"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

// Dashboard runs the computation pipeline over the current snapshot. A
// failed storage read degrades to an empty dashboard rather than an error;
// the statistics are display data, not a transaction.
func (e *Engine) Dashboard(ctx context.Context) Dashboard {
	now := e.now()
	goals, tasks := e.snapshot(ctx)
	return e.dashboardAt(goals, tasks, now)
}

func (e *Engine) dashboardAt(goals []model.Goal, tasks []model.Task, now time.Time) Dashboard {
	visible := filterGoals(goals, model.GoalActive, model.GoalCompleted)
	totals := analytics.GoalTaskTotals(tasks)

	dash := Dashboard{
		Summary:     analytics.Summarize(visible, tasks, now),
		TimeShares:  analytics.WeeklyTimeDistribution(visible, tasks, now),
		Matrix:      analytics.CompletionMatrix(visible, tasks, now),
		Focus:       analytics.PickFocusGoal(filterGoals(goals, model.GoalActive), totals, now),
		GeneratedAt: now,
	}
	for _, goal := range visible {
		tt := totals[goal.ID]
		dash.Goals = append(dash.Goals, GoalProgress{
			Goal:      goal,
			Total:     tt.Total,
			Completed: tt.Completed,
			Percent:   tt.Percent(),
		})
	}
	return dash
}

// Insights runs the full pipeline and hands its output to the cache manager
// as fetch context. force always invokes the remote service.
func (e *Engine) Insights(ctx context.Context, force bool) insights.Result {
	if e.insights == nil {
		return insights.Result{Payload: insights.DefaultPayload(), Source: "fallback"}
	}

	now := e.now()
	goals, tasks := e.snapshot(ctx)
	dash := e.dashboardAt(goals, tasks, now)

	req := insights.Request{
		Goals:     filterGoals(goals, model.GoalActive, model.GoalCompleted),
		Tasks:     tasks,
		Stats:     dash.Summary,
		FocusGoal: dash.Focus,
	}
	if force {
		return e.insights.ForceRefresh(ctx, req)
	}
	return e.insights.Load(ctx, req)
}

func (e *Engine) snapshot(ctx context.Context) ([]model.Goal, []model.Task) {
	goals, err := e.db.ListGoals(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load goals, rendering empty state")
		return nil, nil
	}
	tasks, err := e.db.ListTasks(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load tasks, rendering empty state")
		return nil, nil
	}
	return goals, tasks
}

func filterGoals(goals []model.Goal, statuses ...model.GoalStatus) []model.Goal {
	var filtered []model.Goal
	for _, goal := range goals {
		for _, status := range statuses {
			if goal.Status == status {
				filtered = append(filtered, goal)
				break
			}
		}
	}
	return filtered
}
