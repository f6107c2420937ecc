// Package billing handles subscription plans and checkout sessions.
// The payment provider is an external collaborator behind the
// CheckoutProvider interface; this service only records sessions and
// applies the premium upgrade once a session is observed paid.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nosmoke-health/nosmoke/internal/domain"
	"github.com/nosmoke-health/nosmoke/internal/infra/metrics"
	"github.com/nosmoke-health/nosmoke/internal/infra/sqlite"
)

// Plan is a purchasable subscription period.
type Plan struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Period     string          `json:"period"`
	PeriodDays int             `json:"period_days"`
}

// Plans lists the purchasable subscriptions.
var Plans = map[string]Plan{
	"premium_monthly": {
		ID:         "premium_monthly",
		Name:       "Premium Monthly",
		Price:      decimal.RequireFromString("4.99"),
		Period:     "monthly",
		PeriodDays: 30,
	},
	"premium_yearly": {
		ID:         "premium_yearly",
		Name:       "Premium Yearly",
		Price:      decimal.RequireFromString("39.99"),
		Period:     "yearly",
		PeriodDays: 365,
	},
}

// Session is a provider-created checkout session.
type Session struct {
	SessionID string `json:"session_id"`
	URL       string `json:"checkout_url"`
}

// SessionRequest asks the provider to create a checkout session.
type SessionRequest struct {
	Amount     decimal.Decimal
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// ProviderStatus is the provider's view of a session.
type ProviderStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"-"` // minor units (cents)
	Currency      string `json:"currency"`
}

// CheckoutProvider is the fixed contract with the payment provider.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
	SessionStatus(ctx context.Context, sessionID string) (ProviderStatus, error)
}

// Service records checkout sessions and applies subscription upgrades.
type Service struct {
	db       *sqlite.DB
	provider CheckoutProvider
	now      func() time.Time
}

// NewService creates a billing service.
func NewService(db *sqlite.DB, provider CheckoutProvider) *Service {
	return &Service{db: db, provider: provider, now: time.Now}
}

// Checkout validates the plan, creates a provider session, and records a
// pending transaction tied to the caller.
func (s *Service) Checkout(ctx context.Context, user domain.UserProfile, planID, originURL string) (Session, error) {
	plan, ok := Plans[planID]
	if !ok {
		return Session{}, domain.ErrUnknownPlan
	}

	session, err := s.provider.CreateSession(ctx, SessionRequest{
		Amount:     plan.Price,
		Currency:   "usd",
		SuccessURL: originURL + "/profile?session_id={CHECKOUT_SESSION_ID}&status=success",
		CancelURL:  originURL + "/profile?status=cancelled",
		Metadata: map[string]string{
			"user_id":   user.ID,
			"plan_id":   plan.ID,
			"plan_name": plan.Name,
		},
	})
	if err != nil {
		return Session{}, fmt.Errorf("create checkout session: %w", err)
	}

	tx := domain.PaymentTransaction{
		ID:        uuid.NewString(),
		SessionID: session.SessionID,
		UserID:    user.ID,
		PlanID:    plan.ID,
		Amount:    plan.Price.InexactFloat64(),
		Currency:  "usd",
		Status:    domain.PaymentPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.InsertTransaction(ctx, tx); err != nil {
		return Session{}, fmt.Errorf("record transaction: %w", err)
	}

	metrics.CheckoutSessions.Inc()
	return session, nil
}

// StatusResult reports a session's provider status after confirmation.
type StatusResult struct {
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// ConfirmStatus queries the provider once. The first time a session is
// observed paid, the transaction is marked and the user upgraded to
// premium with an expiry computed from the plan period. Repeat calls on
// a paid session are no-ops, so confirmation is idempotent.
func (s *Service) ConfirmStatus(ctx context.Context, sessionID string) (StatusResult, error) {
	status, err := s.provider.SessionStatus(ctx, sessionID)
	if err != nil {
		return StatusResult{}, fmt.Errorf("fetch session status: %w", err)
	}

	tx, err := s.db.GetTransaction(ctx, sessionID)
	if err != nil {
		return StatusResult{}, err
	}

	if tx.Status != domain.PaymentPaid && status.PaymentStatus == "paid" {
		now := s.now().UTC()
		if err := s.db.MarkTransactionStatus(ctx, sessionID, domain.PaymentPaid, now); err != nil {
			return StatusResult{}, err
		}

		plan, ok := Plans[tx.PlanID]
		if !ok {
			plan = Plans["premium_monthly"]
		}
		end := now.AddDate(0, 0, plan.PeriodDays)
		if err := s.db.SetSubscription(tx.UserID, domain.TierPremium, &end); err != nil {
			return StatusResult{}, err
		}
		metrics.PremiumActivations.Inc()
	}

	// Minor units to dollars, exact.
	amount := decimal.NewFromInt(status.AmountTotal).Div(decimal.NewFromInt(100))
	return StatusResult{
		Status:        status.Status,
		PaymentStatus: status.PaymentStatus,
		Amount:        amount.InexactFloat64(),
		Currency:      status.Currency,
	}, nil
}
