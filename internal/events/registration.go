// Package events defines the registration event payloads shared by the API and consumer.
package events

import (
	"context"
	"time"
)

// Registration event types.
const (
	TypeSignedUp     = "registration.signed_up"
	TypeUnregistered = "registration.unregistered"
)

// Registration is emitted whenever a participant joins or leaves an activity.
type Registration struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	Activity         string    `json:"activity"`
	Email            string    `json:"email"`
	ParticipantCount int       `json:"participant_count"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher hands registration events to a delivery mechanism.
type Publisher interface {
	Publish(ctx context.Context, event Registration) error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

// Publish performs no action.
func (NoopPublisher) Publish(context.Context, Registration) error { return nil }
