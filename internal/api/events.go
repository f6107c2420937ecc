package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nosmoke-health/nosmoke/internal/app/progress"
	"github.com/nosmoke-health/nosmoke/internal/domain"
	"github.com/nosmoke-health/nosmoke/internal/infra/metrics"
)

// ─── Event endpoints ────────────────────────────────────────────────────────

type appendEventRequest struct {
	Type      domain.EventType `json:"event_type" validate:"required"`
	Context   string           `json:"context"`
	Intensity int              `json:"intensity"`
}

func (s *Server) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	var req appendEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := domain.Event{
		ID:        uuid.NewString(),
		UserID:    caller(r).ID,
		Type:      req.Type,
		Context:   req.Context,
		Intensity: req.Intensity,
		CreatedAt: time.Now().UTC(),
	}
	if err := event.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.db.AppendEvent(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.EventsAppended.WithLabelValues(string(event.Type)).Inc()
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	days := queryDays(r, 7)
	since := time.Now().UTC().AddDate(0, 0, -days)

	typeFilter := domain.EventType(r.URL.Query().Get("event_type"))
	if typeFilter != "" && !domain.ValidEventType(typeFilter) {
		writeDomainError(w, domain.ErrInvalidEventType)
		return
	}

	events, err := s.db.EventsSince(r.Context(), caller(r).ID, since, typeFilter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Newest first for display.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	events, err := s.db.EventsSince(r.Context(), caller(r).ID, time.Time{}, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := progress.Today(events, time.Now())
	metrics.ProgressQueries.WithLabelValues("today").Inc()

	recent := events
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cigarettes_today": stats.CigarettesToday,
		"resisted_today":   stats.ResistedToday,
		"last_cigarette":   stats.LastCigarette,
		"events":           recent,
	})
}

// queryDays parses the ?days= parameter with a default.
func queryDays(r *http.Request, def int) int {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return def
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return def
	}
	return days
}
