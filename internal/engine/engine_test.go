package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"goalpulse/internal/model"
)

type fakeSnapshot struct {
	goals []model.Goal
	tasks []model.Task
	err   error
}

func (f *fakeSnapshot) ListGoals(ctx context.Context) ([]model.Goal, error) {
	return f.goals, f.err
}

func (f *fakeSnapshot) ListTasks(ctx context.Context) ([]model.Task, error) {
	return f.tasks, f.err
}

func fixedEngine(db Snapshot, now time.Time) *Engine {
	e := New(db, nil)
	e.now = func() time.Time { return now }
	return e
}

func TestDashboardPipeline(t *testing.T) {
	now := time.Date(2026, time.January, 14, 15, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -30)
	completedAt := now.Add(-2 * time.Hour)

	db := &fakeSnapshot{
		goals: []model.Goal{
			{ID: "g1", Title: "Learn Go", Status: model.GoalActive, StartDate: start, TargetDate: now.AddDate(0, 0, -3)},
			{ID: "g2", Title: "Old", Status: model.GoalArchived, StartDate: start, TargetDate: now.AddDate(0, 0, 30)},
		},
		tasks: []model.Task{
			{ID: "t1", GoalID: "g1", Status: model.TaskCompleted, CompletedAt: &completedAt, EstimatedMinutes: 30},
			{ID: "t2", GoalID: "g1", Status: model.TaskPending},
		},
	}

	dash := fixedEngine(db, now).Dashboard(context.Background())

	// Archived goals are invisible to every stage.
	if dash.Summary.TotalGoals != 1 || len(dash.Goals) != 1 {
		t.Errorf("Expected archived goal filtered out: %+v", dash.Summary)
	}
	if dash.Summary.OverallProgress != 50 {
		t.Errorf("Expected overall progress 50, got %d", dash.Summary.OverallProgress)
	}
	if dash.Summary.StreakDays != 1 {
		t.Errorf("Expected streak 1, got %d", dash.Summary.StreakDays)
	}
	if len(dash.TimeShares) != 1 || dash.TimeShares[0].Minutes != 30 {
		t.Errorf("Unexpected time shares: %+v", dash.TimeShares)
	}
	if dash.Goals[0].Percent != 50 {
		t.Errorf("Expected goal percent 50, got %d", dash.Goals[0].Percent)
	}

	// g1 is overdue with a task remaining, so it must be the focus goal.
	if dash.Focus == nil {
		t.Fatal("Expected a focus goal")
	}
	if dash.Focus.Goal.ID != "g1" || dash.Focus.Score != 100 {
		t.Errorf("Unexpected focus goal: %+v", dash.Focus)
	}
}

func TestDashboardDegradesOnStorageFailure(t *testing.T) {
	db := &fakeSnapshot{err: errors.New("disk on fire")}
	dash := fixedEngine(db, time.Now()).Dashboard(context.Background())

	if dash.Summary.TotalGoals != 0 || dash.Summary.OverallProgress != 0 {
		t.Errorf("Expected zero-state dashboard, got %+v", dash.Summary)
	}
	if dash.Focus != nil {
		t.Errorf("Expected no focus goal, got %+v", dash.Focus)
	}
	if dash.Matrix.MaxCell != 1 {
		t.Errorf("Expected normalizer floor 1, got %d", dash.Matrix.MaxCell)
	}
}

func TestInsightsWithoutManagerServesDefaults(t *testing.T) {
	db := &fakeSnapshot{}
	res := fixedEngine(db, time.Now()).Insights(context.Background(), false)

	if res.Source != "fallback" {
		t.Errorf("Expected fallback source, got %q", res.Source)
	}
	if len(res.Payload.Tips) == 0 {
		t.Error("Expected default tips")
	}
}
