// Package events carries marketplace notifications between horse portal
// modules inside one process: a submitted listing or stable, a changed order
// or reservation, media left behind by a failed submission. Domain event
// types live in internal/events; this package holds only the plumbing.
package events

import (
	"context"
	"time"
)

// Event is anything published on a Bus. Subscribers are keyed by EventName,
// so two types must never share a name.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events to carry the publish time.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps an event with the current UTC time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now().UTC()}
}

// Handler reacts to one published event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe to a Bus.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes events to the handlers subscribed to their name.
type Bus interface {
	// Publish returns immediately. Each handler runs in its own goroutine on
	// a context detached from ctx, and its error is only logged.
	Publish(ctx context.Context, event Event)

	// PublishSync runs the handlers one after another in subscription order
	// on ctx and returns their joined errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe adds handler for events whose EventName equals eventName.
	Subscribe(eventName string, handler Handler)
}
