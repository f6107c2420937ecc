package domain

import "time"

// TriggerType tags the context a user associates with a craving.
type TriggerType string

const (
	TriggerStress    TriggerType = "stress"
	TriggerBoredom   TriggerType = "boredom"
	TriggerSocial    TriggerType = "social"
	TriggerHabit     TriggerType = "habit"
	TriggerEmotional TriggerType = "emotional"
	TriggerOther     TriggerType = "other"
)

// TriggerTypes lists all known trigger types.
var TriggerTypes = []TriggerType{
	TriggerStress, TriggerBoredom, TriggerSocial,
	TriggerHabit, TriggerEmotional, TriggerOther,
}

// ValidTriggerType reports whether t is a known trigger type.
func ValidTriggerType(t TriggerType) bool {
	for _, known := range TriggerTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Trigger is a single append-only craving-context entry.
// Same immutability and ownership rules as Event.
type Trigger struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Type        TriggerType `json:"trigger_type"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Validate checks a trigger before it reaches storage.
func (t Trigger) Validate() error {
	if t.UserID == "" {
		return ErrUserIDRequired
	}
	if !ValidTriggerType(t.Type) {
		return ErrInvalidTriggerType
	}
	return nil
}
