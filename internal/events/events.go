// Package events publishes domain events (chef promotions, new courses) to
// downstream consumers. Publishing is best-effort and happens after the
// originating transaction commits.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeUserRegistered = "user.registered"
	TypeChefPromoted   = "chef.promoted"
	TypeRecipeCreated  = "recipe.created"
	TypeCourseCreated  = "course.created"

	// TypePasswordResetRequested carries the one-time reset token to the mail
	// consumer. It is the only place the plain token leaves the service.
	TypePasswordResetRequested = "password.reset_requested"
)

// Event is the envelope written to the broker as JSON.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       string            `json:"type"`
	OccurredAt time.Time         `json:"occurredAt"`
	Attributes map[string]string `json:"attributes"`
}

// New builds an event of the given type stamped with the current time.
func New(eventType string, attrs map[string]string) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Attributes: attrs,
	}
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
