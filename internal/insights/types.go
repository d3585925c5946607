// Package insights wraps the remote AI insight-generation service behind a
// time-boxed persisted cache. Core dashboard statistics never depend on it;
// every failure here degrades to a cached or static payload.
package insights

import (
	"goalpulse/internal/analytics"
	"goalpulse/internal/model"
)

// Payload is the structured narrative returned by the insights service.
type Payload struct {
	WeeklySummary string    `json:"weeklySummary"`
	Insights      []Insight `json:"insights"`
	Tips          []string  `json:"tips"`
	Focus         *Focus    `json:"focus,omitempty"`
	Motivation    string    `json:"motivation"`
}

// Insight is a single card on the analytics screen.
type Insight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Focus is the narrative block for the recommended focus goal.
type Focus struct {
	GoalTitle string `json:"goalTitle"`
	Reason    string `json:"reason"`
	Urgency   string `json:"urgency"`
}

// Request is the context handed to the service: the raw snapshot, the
// computed aggregates and the scorer's recommendation.
type Request struct {
	Goals     []model.Goal         `json:"goals"`
	Tasks     []model.Task         `json:"tasks"`
	Stats     analytics.Summary    `json:"stats"`
	FocusGoal *analytics.FocusGoal `json:"focusGoal,omitempty"`
}

// envelope is the service's response wrapper.
type envelope struct {
	Success bool     `json:"success"`
	Data    *Payload `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
}
