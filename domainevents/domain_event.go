package domainevents

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents something that happened to an entity.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// Describe renders the event for humans.
	Describe() string
}

// HasDomainEvents is implemented by entities that record domain events.
type HasDomainEvents interface {
	// CollectEvents returns the pending events without removing them.
	// Calling it repeatedly without further mutations yields the same events.
	CollectEvents() DomainEvents

	// ClearEvents drops the pending events and the pending changes.
	ClearEvents()
}

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
