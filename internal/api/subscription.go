package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nosmoke-health/nosmoke/internal/app/billing"
)

// billingPlans flattens the plan catalog for the public endpoint.
func billingPlans() map[string]interface{} {
	out := make(map[string]interface{}, len(billing.Plans))
	for id, p := range billing.Plans {
		out[id] = map[string]interface{}{
			"name":   p.Name,
			"price":  p.Price.InexactFloat64(),
			"period": p.Period,
		}
	}
	return out
}

// ─── Subscription endpoints ─────────────────────────────────────────────────

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plans": billingPlans(),
	})
}

type checkoutRequest struct {
	PlanID    string `json:"plan_id" validate:"required"`
	OriginURL string `json:"origin_url" validate:"required,url"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := s.billing.Checkout(r.Context(), caller(r), req.PlanID, req.OriginURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCheckoutStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := s.billing.ConfirmStatus(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleStripeWebhook acknowledges provider webhooks. Signature
// verification and fulfillment live with the payment provider
// integration; subscription state converges via status confirmation.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	log.Printf("[api] received stripe webhook")
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
