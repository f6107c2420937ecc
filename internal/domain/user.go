package domain

import "time"

// SubscriptionTier gates premium-only content.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// UserProfile holds a user's identity and baseline smoking profile.
// QuitDate anchors every elapsed-time metric; it is set once at
// registration (or by an explicit reset through a profile update).
type UserProfile struct {
	ID                string           `json:"id"`
	Email             string           `json:"email,omitempty"`
	TelegramID        int64            `json:"telegram_id,omitempty"`
	Name              string           `json:"name"`
	PasswordHash      string           `json:"-"`
	CigarettesPerDay  int              `json:"cigarettes_per_day"`
	CostPerPack       float64          `json:"cost_per_pack"`
	CigarettesPerPack int              `json:"cigarettes_per_pack"`
	QuitDate          *time.Time       `json:"quit_date,omitempty"`
	Subscription      SubscriptionTier `json:"subscription_status"`
	SubscriptionEnd   *time.Time       `json:"subscription_end,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// Baseline defaults applied when a user registers without a profile
// (Telegram handshake, or registration with zeroed fields).
const (
	DefaultCigarettesPerDay  = 10
	DefaultCostPerPack       = 10.0
	DefaultCigarettesPerPack = 20
)

// Premium reports whether the user currently holds the premium tier.
func (u UserProfile) Premium() bool {
	return u.Subscription == TierPremium
}

// ValidateBaseline rejects non-positive baseline numbers so derived
// metrics can never go negative. A zero pack size is a configuration
// error distinct from validation: it makes money_saved incomputable.
func (u UserProfile) ValidateBaseline() error {
	if u.CigarettesPerDay <= 0 {
		return ErrNonPositiveBaseline
	}
	if u.CostPerPack <= 0 {
		return ErrNonPositiveBaseline
	}
	if u.CigarettesPerPack <= 0 {
		return ErrNonPositiveBaseline
	}
	return nil
}

// ProfilePatch is a partial profile update. Nil fields are untouched.
type ProfilePatch struct {
	Name              *string    `json:"name,omitempty"`
	CigarettesPerDay  *int       `json:"cigarettes_per_day,omitempty"`
	CostPerPack       *float64   `json:"cost_per_pack,omitempty"`
	CigarettesPerPack *int       `json:"cigarettes_per_pack,omitempty"`
	QuitDate          *time.Time `json:"quit_date,omitempty"`
}

// Validate rejects patches that would leave the profile with
// non-positive baseline numbers.
func (p ProfilePatch) Validate() error {
	if p.CigarettesPerDay != nil && *p.CigarettesPerDay <= 0 {
		return ErrNonPositiveBaseline
	}
	if p.CostPerPack != nil && *p.CostPerPack <= 0 {
		return ErrNonPositiveBaseline
	}
	if p.CigarettesPerPack != nil && *p.CigarettesPerPack <= 0 {
		return ErrNonPositiveBaseline
	}
	return nil
}

// Apply returns a copy of u with the patch applied.
func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.CigarettesPerDay != nil {
		u.CigarettesPerDay = *p.CigarettesPerDay
	}
	if p.CostPerPack != nil {
		u.CostPerPack = *p.CostPerPack
	}
	if p.CigarettesPerPack != nil {
		u.CigarettesPerPack = *p.CigarettesPerPack
	}
	if p.QuitDate != nil {
		u.QuitDate = p.QuitDate
	}
	return u
}
