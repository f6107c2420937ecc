package api

import (
	"net/http"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/app/progress"
	"github.com/nosmoke-health/nosmoke/internal/infra/metrics"
)

// ─── Progress endpoints ─────────────────────────────────────────────────────
// Each query reads the current log snapshot and computes from it — the
// engine holds no aggregate state that could drift from the log.

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := caller(r)

	events, err := s.db.EventsSince(r.Context(), user.ID, time.Time{}, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary, err := progress.Summarize(events, user, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.ProgressQueries.WithLabelValues("summary").Inc()
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	since := progress.DayStart(now).AddDate(0, 0, -6)

	events, err := s.db.EventsSince(r.Context(), caller(r).ID, since, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ProgressQueries.WithLabelValues("weekly").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days": progress.Weekly(events, now),
	})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	since := progress.DayStart(now).AddDate(0, 0, -27)

	events, err := s.db.EventsSince(r.Context(), caller(r).ID, since, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ProgressQueries.WithLabelValues("monthly").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weeks": progress.Monthly(events, now),
	})
}
