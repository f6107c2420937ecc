package billing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// MockProvider simulates a payment provider for development and tests.
// Sessions become paid after PaidAfter status checks (0 = immediately).
type MockProvider struct {
	mu        sync.Mutex
	PaidAfter int
	sessions  map[string]*mockSession
}

type mockSession struct {
	amount int64
	checks int
}

// NewMockProvider creates an in-memory provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{sessions: make(map[string]*mockSession)}
}

// CreateSession records a fake session and returns a local URL.
func (m *MockProvider) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := "cs_mock_" + uuid.NewString()
	m.sessions[id] = &mockSession{amount: req.Amount.Mul(hundred).IntPart()}
	return Session{
		SessionID: id,
		URL:       "https://checkout.mock.local/" + id,
	}, nil
}

// SessionStatus reports open until PaidAfter checks have happened.
func (m *MockProvider) SessionStatus(ctx context.Context, sessionID string) (ProviderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return ProviderStatus{}, domain.ErrSessionNotFound
	}
	session.checks++

	status := ProviderStatus{
		Status:        "open",
		PaymentStatus: "unpaid",
		AmountTotal:   session.amount,
		Currency:      "usd",
	}
	if session.checks > m.PaidAfter {
		status.Status = "complete"
		status.PaymentStatus = "paid"
	}
	return status, nil
}
