package billing

import (
	"context"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// PollConfig bounds the payment-status polling loop.
type PollConfig struct {
	MaxAttempts int           // attempts before giving up
	BaseDelay   time.Duration // initial delay between attempts (doubles each time)
	MaxDelay    time.Duration // cap on the backoff delay
}

// DefaultPollConfig returns production polling defaults.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxAttempts: 8,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// PollStatus confirms the session status repeatedly until it reaches a
// terminal state (paid or expired), the attempt budget runs out, or ctx
// is cancelled. Exhausting the budget returns ErrPollTimeout — never an
// unbounded loop.
func (s *Service) PollStatus(ctx context.Context, sessionID string, cfg PollConfig) (StatusResult, error) {
	delay := cfg.BaseDelay

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return StatusResult{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}

		result, err := s.ConfirmStatus(ctx, sessionID)
		if err != nil {
			return StatusResult{}, err
		}
		if result.PaymentStatus == "paid" || result.Status == "expired" {
			return result, nil
		}
	}

	return StatusResult{}, domain.ErrPollTimeout
}
