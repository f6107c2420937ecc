// Package api provides the NoSmoke HTTP server: auth, event/trigger
// logging, derived progress metrics, trigger patterns, profile,
// subscription, and the gated insights feed.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nosmoke-health/nosmoke/internal/app/billing"
	"github.com/nosmoke-health/nosmoke/internal/app/insights"
	"github.com/nosmoke-health/nosmoke/internal/domain"
	"github.com/nosmoke-health/nosmoke/internal/health"
	"github.com/nosmoke-health/nosmoke/internal/infra/sqlite"
	"github.com/nosmoke-health/nosmoke/internal/security"
)

// Server is the NoSmoke HTTP API server.
type Server struct {
	db             *sqlite.DB
	tokens         *security.TokenIssuer
	billing        *billing.Service
	insights       *insights.Service
	validate       *validator.Validate
	botToken       string
	metricsEnabled bool
	checker        *health.Checker
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, tokens *security.TokenIssuer, bill *billing.Service, ins *insights.Service) *Server {
	return &Server{
		db:       db,
		tokens:   tokens,
		billing:  bill,
		insights: ins,
		validate: validator.New(),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetBotToken sets the Telegram bot token used to verify Mini App logins.
func (s *Server) SetBotToken(token string) { s.botToken = token }

// SetHealthChecker wires the periodic health checker into /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"message": "NoSmoke API",
				"version": "1.0.0",
			})
		})

		// Public routes
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/telegram", s.handleTelegramAuth)
		r.Get("/subscription/plans", s.handlePlans)
		r.Post("/webhook/stripe", s.handleStripeWebhook)
		r.Get("/insights/education", s.handleEducation)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/auth/me", s.handleMe)

			r.Post("/events", s.handleAppendEvent)
			r.Get("/events", s.handleListEvents)
			r.Get("/events/today", s.handleToday)

			r.Post("/triggers", s.handleAppendTrigger)
			r.Get("/triggers", s.handleListTriggers)
			r.Get("/triggers/patterns", s.handlePatterns)

			r.Get("/progress/summary", s.handleSummary)
			r.Get("/progress/weekly", s.handleWeekly)
			r.Get("/progress/monthly", s.handleMonthly)

			r.Put("/profile", s.handleUpdateProfile)
			r.Get("/profile/stats", s.handleProfileStats)

			r.Post("/subscription/checkout", s.handleCheckout)
			r.Get("/subscription/status/{sessionID}", s.handleCheckoutStatus)

			r.Get("/insights", s.handleInsights)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"checks": s.checker.Statuses(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ─── Caller context ─────────────────────────────────────────────────────────
// The authenticated user is resolved once per request from the bearer
// token and passed through the request context — no ambient auth state.

type contextKey string

const userKey contextKey = "nosmoke.user"

// requireUser authenticates the bearer token and loads the caller.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		userID, err := s.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := s.db.GetUser(userID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// caller returns the authenticated user stored by requireUser.
func caller(r *http.Request) domain.UserProfile {
	return r.Context().Value(userKey).(domain.UserProfile)
}

// ─── Response helpers ───────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps sentinel errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEventType),
		errors.Is(err, domain.ErrInvalidTriggerType),
		errors.Is(err, domain.ErrInvalidIntensity),
		errors.Is(err, domain.ErrNonPositiveBaseline),
		errors.Is(err, domain.ErrUserIDRequired),
		errors.Is(err, domain.ErrUnknownPlan),
		errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTelegramSignature):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrPackSizeZero):
		// Configuration error: the profile must be fixed before metrics
		// are computable. Distinct from validation and not a crash.
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
