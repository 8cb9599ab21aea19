package events

import (
	"context"
	"time"
)

const (
	NoteCreated    = "NOTE_CREATED"
	SubjectCreated = "SUBJECT_CREATED"
	UserSignedIn   = "USER_SIGNED_IN"
	UserSignedOut  = "USER_SIGNED_OUT"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher is anything that can push an event onto the external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
