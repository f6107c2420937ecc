package api

import (
	"net/http"
	"time"
)

// ─── Insights endpoints ─────────────────────────────────────────────────────

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	feed := s.insights.Feed(caller(r).Subscription, time.Now())
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) handleEducation(w http.ResponseWriter, r *http.Request) {
	articles, milestones := s.insights.Education()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"articles":   articles,
		"milestones": milestones,
	})
}
