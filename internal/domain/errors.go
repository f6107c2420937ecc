package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Validation errors — rejected before storage, no partial writes
	ErrUserIDRequired      = errors.New("user id is required")
	ErrInvalidEventType    = errors.New("unknown event type")
	ErrInvalidTriggerType  = errors.New("unknown trigger type")
	ErrInvalidIntensity    = errors.New("intensity must be between 1 and 10")
	ErrNonPositiveBaseline = errors.New("baseline smoking values must be positive")

	// Configuration errors — profile must be fixed before metrics compute
	ErrPackSizeZero = errors.New("cigarettes per pack is zero — money saved is incomputable")

	// Not-found errors
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("checkout session not found")

	// Auth errors
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTelegramSignature  = errors.New("telegram init data signature mismatch")

	// Billing errors
	ErrUnknownPlan = errors.New("unknown subscription plan")
	ErrPollTimeout = errors.New("payment status polling timed out")
)
