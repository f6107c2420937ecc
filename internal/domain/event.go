// Package domain holds the pure NoSmoke domain model: events, triggers,
// user profiles, insights, and the sentinel errors shared by all layers.
// Nothing in this package touches storage or transport.
package domain

import "time"

// EventType classifies a logged smoking-related event.
type EventType string

const (
	// EventCigarette records a cigarette smoked (a lapse).
	EventCigarette EventType = "cigarette"
	// EventResisted records an urge the user resisted.
	EventResisted EventType = "resisted"
)

// ValidEventType reports whether t is a known event type.
func ValidEventType(t EventType) bool {
	return t == EventCigarette || t == EventResisted
}

// Intensity bounds for the optional 1–10 urge scale.
const (
	IntensityMin = 1
	IntensityMax = 10
)

// Event is a single append-only log entry. Immutable once stored:
// CreatedAt is assigned at append time and never edited, and events are
// never deleted so historical aggregates stay accurate.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      EventType `json:"event_type"`
	Context   string    `json:"context,omitempty"`
	Intensity int       `json:"intensity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks an event before it reaches storage.
// Rejection here guarantees no partial writes of malformed rows.
func (e Event) Validate() error {
	if e.UserID == "" {
		return ErrUserIDRequired
	}
	if !ValidEventType(e.Type) {
		return ErrInvalidEventType
	}
	if e.Intensity != 0 && (e.Intensity < IntensityMin || e.Intensity > IntensityMax) {
		return ErrInvalidIntensity
	}
	return nil
}
