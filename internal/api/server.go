// Package api exposes the analytics engine to the mobile UI as a small JSON
// feed. Presentation-only adjustments (like the minimum visual share for the
// time-distribution chart) happen here, never in the analytics layer.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"goalpulse/internal/analytics"
	"goalpulse/internal/engine"
)

// minVisualShare is the smallest slice the chart renders; tiny but non-zero
// shares are bumped up so they stay visible.
const minVisualShare = 2.0

// Server handles the HTTP surface.
type Server struct {
	engine *engine.Engine
}

// New builds the router.
func New(e *engine.Engine) http.Handler {
	s := &Server{engine: e}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/insights", s.handleInsights)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// timeShareView decorates a raw share with the floored display percentage.
type timeShareView struct {
	analytics.TimeShare
	DisplayPercent float64 `json:"displayPercent"`
}

type dashboardResponse struct {
	Summary     analytics.Summary     `json:"summary"`
	TimeShares  []timeShareView       `json:"timeShares"`
	Matrix      analytics.WeekMatrix  `json:"matrix"`
	Goals       []engine.GoalProgress `json:"goals"`
	Focus       *analytics.FocusGoal  `json:"focusGoal,omitempty"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash := s.engine.Dashboard(r.Context())

	resp := dashboardResponse{
		Summary:     dash.Summary,
		Matrix:      dash.Matrix,
		Goals:       dash.Goals,
		Focus:       dash.Focus,
		GeneratedAt: dash.GeneratedAt,
	}
	for _, share := range dash.TimeShares {
		view := timeShareView{TimeShare: share, DisplayPercent: share.Percent}
		if view.DisplayPercent < minVisualShare {
			view.DisplayPercent = minVisualShare
		}
		resp.TimeShares = append(resp.TimeShares, view)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	force := false
	switch r.URL.Query().Get("refresh") {
	case "1", "true":
		force = true
	}
	res := s.engine.Insights(r.Context(), force)
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
