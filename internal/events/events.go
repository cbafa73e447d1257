// Package events publishes domain events after successful writes.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Event names.
const (
	PersonCreated      = "person.created"
	PersonUpdated      = "person.updated"
	PersonDeleted      = "person.deleted"
	CategoryCreated    = "category.created"
	CategoryUpdated    = "category.updated"
	CategoryDeleted    = "category.deleted"
	TransactionCreated = "transaction.created"
)

// Event is a committed change to one entity.
type Event struct {
	Name       string         `json:"name"`
	EntityID   int            `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// New builds an event stamped with the current time.
func New(name string, entityID int, data map[string]any) Event {
	return Event{Name: name, EntityID: entityID, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Emit publishes e on p. Failures are logged and dropped because the write
// that produced the event has already been committed.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "event publish failed", "event", e.Name, "entity_id", e.EntityID, "error", err)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Names returns the names of recorded events in publish order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
