package model

import (
	"strings"
	"time"
)

// Category classifies a goal into one of the fixed life areas.
type Category string

const (
	CategoryCareer       Category = "career"
	CategoryFinancial    Category = "financial"
	CategoryHealth       Category = "health"
	CategoryEducation    Category = "education"
	CategoryPersonal     Category = "personal"
	CategoryRelationship Category = "relationship"
	CategoryOther        Category = "other"
)

// ParseCategory maps free-form storage values onto the known categories.
// Unknown values fall back to CategoryOther rather than failing the load.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryCareer, CategoryFinancial, CategoryHealth,
		CategoryEducation, CategoryPersonal, CategoryRelationship, CategoryOther:
		return c
	default:
		return CategoryOther
	}
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalArchived  GoalStatus = "archived"
)

// ParseGoalStatus maps storage values onto goal states, falling back to
// GoalArchived so unknown states are excluded from analytics rather than
// silently treated as active.
func ParseGoalStatus(s string) GoalStatus {
	switch gs := GoalStatus(strings.ToLower(strings.TrimSpace(s))); gs {
	case GoalActive, GoalCompleted, GoalArchived:
		return gs
	default:
		return GoalArchived
	}
}

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskSkipped   TaskStatus = "skipped"
)

func ParseTaskStatus(s string) TaskStatus {
	switch ts := TaskStatus(strings.ToLower(strings.TrimSpace(s))); ts {
	case TaskPending, TaskCompleted, TaskSkipped:
		return ts
	default:
		return TaskPending
	}
}

// TaskPriority is used for display ordering only; the analytics engine
// ignores it.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

func ParseTaskPriority(s string) TaskPriority {
	switch p := TaskPriority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// Goal is a user-defined long-term objective. The task counters are a
// snapshot maintained by the storage layer and may lag behind the live Task
// records; analytics recomputes them from tasks instead of trusting them.
type Goal struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       Category   `json:"category"`
	Status         GoalStatus `json:"status"`
	StartDate      time.Time  `json:"startDate"`
	TargetDate     time.Time  `json:"targetDate"`
	TotalTasks     int        `json:"totalTasks"`
	CompletedTasks int        `json:"completedTasks"`
	CompletionPct  int        `json:"completionPercentage"`
}

// Task is a discrete actionable item belonging to a goal.
type Task struct {
	ID               string       `json:"id"`
	GoalID           string       `json:"goalId"`
	Title            string       `json:"title"`
	Status           TaskStatus   `json:"status"`
	Priority         TaskPriority `json:"priority"`
	ScheduledDate    *time.Time   `json:"scheduledDate,omitempty"`
	CompletedAt      *time.Time   `json:"completedAt,omitempty"`
	EstimatedMinutes int          `json:"estimatedMinutes"`
	ActualMinutes    *int         `json:"actualMinutes,omitempty"`
}

// Done reports whether the task counts as completed. CompletedAt is expected
// to be set whenever the status is completed, but the record is not validated
// here; time-based calculations additionally require the timestamp.
func (t Task) Done() bool {
	return t.Status == TaskCompleted
}

// WorkedMinutes returns the time spent on the task, falling back to the
// estimate when no actual duration was recorded.
func (t Task) WorkedMinutes() int {
	if t.ActualMinutes != nil {
		return *t.ActualMinutes
	}
	return t.EstimatedMinutes
}
