package model

import (
	"testing"
	"time"
)

func TestParseCategoryFallback(t *testing.T) {
	cases := map[string]Category{
		"career":     CategoryCareer,
		"HEALTH":     CategoryHealth,
		" financial": CategoryFinancial,
		"hobby":      CategoryOther,
		"":           CategoryOther,
	}
	for in, want := range cases {
		if got := ParseCategory(in); got != want {
			t.Errorf("ParseCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseGoalStatusFallback(t *testing.T) {
	if got := ParseGoalStatus("ACTIVE"); got != GoalActive {
		t.Errorf("Expected active, got %q", got)
	}
	// Unknown states must not leak into the active set.
	if got := ParseGoalStatus("paused"); got != GoalArchived {
		t.Errorf("Expected archived fallback, got %q", got)
	}
}

func TestWorkedMinutesFallback(t *testing.T) {
	actual := 25
	withActual := Task{EstimatedMinutes: 60, ActualMinutes: &actual}
	if got := withActual.WorkedMinutes(); got != 25 {
		t.Errorf("Expected actual minutes 25, got %d", got)
	}

	withoutActual := Task{EstimatedMinutes: 60}
	if got := withoutActual.WorkedMinutes(); got != 60 {
		t.Errorf("Expected estimate fallback 60, got %d", got)
	}
}

func TestDone(t *testing.T) {
	now := time.Now()
	if (Task{Status: TaskCompleted, CompletedAt: &now}).Done() != true {
		t.Error("Completed task should be done")
	}
	if (Task{Status: TaskPending}).Done() {
		t.Error("Pending task should not be done")
	}
}
