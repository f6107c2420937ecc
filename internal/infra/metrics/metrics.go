// Package metrics provides Prometheus metrics for NoSmoke: counters for
// log appends, derived-metric queries, auth, and billing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Log appends ────────────────────────────────────────────────────────────

// EventsAppended tracks appended events by type.
var EventsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "events_appended_total",
	Help:      "Total events appended to the log.",
}, []string{"type"})

// TriggersAppended tracks appended triggers by type.
var TriggersAppended = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "triggers_appended_total",
	Help:      "Total triggers appended to the log.",
}, []string{"type"})

// ─── Derived-metric queries ─────────────────────────────────────────────────

// ProgressQueries tracks progress computations by kind (today, summary,
// weekly, monthly).
var ProgressQueries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "progress_queries_total",
	Help:      "Total progress metric computations.",
}, []string{"kind"})

// PatternQueries tracks trigger-pattern analyses.
var PatternQueries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "pattern_queries_total",
	Help:      "Total trigger pattern analyses.",
})

// ─── Auth ───────────────────────────────────────────────────────────────────

// Logins tracks successful logins by method (password, telegram).
var Logins = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "logins_total",
	Help:      "Total successful logins.",
}, []string{"method"})

// Registrations tracks new user registrations.
var Registrations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "registrations_total",
	Help:      "Total user registrations.",
})

// ─── Billing ────────────────────────────────────────────────────────────────

// CheckoutSessions tracks created checkout sessions.
var CheckoutSessions = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "checkout_sessions_total",
	Help:      "Total checkout sessions created.",
})

// PremiumActivations tracks premium upgrades applied.
var PremiumActivations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nosmoke",
	Name:      "premium_activations_total",
	Help:      "Total premium subscription activations.",
})
