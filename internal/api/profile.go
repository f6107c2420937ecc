package api

import (
	"encoding/json"
	"net/http"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// ─── Profile endpoints ──────────────────────────────────────────────────────

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	updated := patch.Apply(caller(r))
	if err := s.db.UpdateProfile(updated); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleProfileStats(w http.ResponseWriter, r *http.Request) {
	user := caller(r)

	totalEvents, err := s.db.CountEvents(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	totalTriggers, err := s.db.CountTriggers(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_events_logged":   totalEvents,
		"total_triggers_logged": totalTriggers,
		"subscription_status":   user.Subscription,
		"subscription_end":      user.SubscriptionEnd,
		"member_since":          user.CreatedAt,
	})
}
