package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nosmoke-health/nosmoke/internal/app/patterns"
	"github.com/nosmoke-health/nosmoke/internal/domain"
	"github.com/nosmoke-health/nosmoke/internal/infra/metrics"
)

// ─── Trigger endpoints ──────────────────────────────────────────────────────

type appendTriggerRequest struct {
	Type        domain.TriggerType `json:"trigger_type" validate:"required"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
}

func (s *Server) handleAppendTrigger(w http.ResponseWriter, r *http.Request) {
	var req appendTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trigger := domain.Trigger{
		ID:          uuid.NewString(),
		UserID:      caller(r).ID,
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		CreatedAt:   time.Now().UTC(),
	}
	if err := trigger.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.db.AppendTrigger(r.Context(), trigger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.TriggersAppended.WithLabelValues(string(trigger.Type)).Inc()
	writeJSON(w, http.StatusCreated, trigger)
}

func (s *Server) handleListTriggers(w http.ResponseWriter, r *http.Request) {
	days := queryDays(r, 30)
	since := time.Now().UTC().AddDate(0, 0, -days)

	triggers, err := s.db.TriggersSince(r.Context(), caller(r).ID, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for i, j := 0, len(triggers)-1; i < j; i, j = i+1, j-1 {
		triggers[i], triggers[j] = triggers[j], triggers[i]
	}
	if triggers == nil {
		triggers = []domain.Trigger{}
	}
	writeJSON(w, http.StatusOK, triggers)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	// Full-log window: pattern ranking considers every trigger logged.
	triggers, err := s.db.TriggersSince(r.Context(), caller(r).ID, time.Time{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.PatternQueries.Inc()
	writeJSON(w, http.StatusOK, patterns.Analyze(triggers))
}
