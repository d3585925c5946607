package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goalpulse/internal/engine"
	"goalpulse/internal/model"
)

type fakeSnapshot struct {
	goals []model.Goal
	tasks []model.Task
}

func (f *fakeSnapshot) ListGoals(ctx context.Context) ([]model.Goal, error) { return f.goals, nil }
func (f *fakeSnapshot) ListTasks(ctx context.Context) ([]model.Task, error) { return f.tasks, nil }

func TestHealthz(t *testing.T) {
	handler := New(engine.New(&fakeSnapshot{}, nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestDashboardAppliesVisualFloor(t *testing.T) {
	now := time.Now()
	bigDone := now.Add(-time.Hour)
	smallDone := now.Add(-2 * time.Hour)

	db := &fakeSnapshot{
		goals: []model.Goal{
			{ID: "big", Title: "Big", Status: model.GoalActive, StartDate: now.AddDate(0, 0, -10), TargetDate: now.AddDate(0, 0, 30)},
			{ID: "small", Title: "Small", Status: model.GoalActive, StartDate: now.AddDate(0, 0, -10), TargetDate: now.AddDate(0, 0, 30)},
		},
		tasks: []model.Task{
			{ID: "t1", GoalID: "big", Status: model.TaskCompleted, CompletedAt: &bigDone, EstimatedMinutes: 990},
			{ID: "t2", GoalID: "small", Status: model.TaskCompleted, CompletedAt: &smallDone, EstimatedMinutes: 10},
			{ID: "t3", GoalID: "big", Status: model.TaskPending},
		},
	}
	handler := New(engine.New(db, nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp dashboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Response did not decode: %v", err)
	}
	if len(resp.TimeShares) != 2 {
		t.Fatalf("Expected 2 time shares, got %d", len(resp.TimeShares))
	}

	small := resp.TimeShares[1]
	if small.Percent >= minVisualShare {
		t.Fatalf("Fixture lost its point: raw share is %.1f", small.Percent)
	}
	// The raw percentage is preserved; only the display value is floored.
	if small.DisplayPercent != minVisualShare {
		t.Errorf("Expected display floor %.0f, got %.1f", minVisualShare, small.DisplayPercent)
	}
	if resp.TimeShares[0].DisplayPercent != resp.TimeShares[0].Percent {
		t.Errorf("Large share should be unfloored: %+v", resp.TimeShares[0])
	}
}

func TestInsightsEndpointDegradesGracefully(t *testing.T) {
	// No insights manager configured: the endpoint still answers 200 with
	// the static defaults instead of failing.
	handler := New(engine.New(&fakeSnapshot{}, nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/insights?refresh=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var res struct {
		Source  string `json:"source"`
		Payload struct {
			Tips []string `json:"tips"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("Response did not decode: %v", err)
	}
	if res.Source != "fallback" || len(res.Payload.Tips) == 0 {
		t.Errorf("Expected fallback payload, got %+v", res)
	}
}
