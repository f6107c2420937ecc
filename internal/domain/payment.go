package domain

import "time"

// PaymentStatus tracks a checkout session's lifecycle.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentExpired PaymentStatus = "expired"
)

// PaymentTransaction records one checkout session. The provider owns the
// session itself; this row is the local source of truth for whether the
// upgrade was already applied (idempotent confirmation).
type PaymentTransaction struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	UserID    string        `json:"user_id"`
	PlanID    string        `json:"plan_id"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"payment_status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}
