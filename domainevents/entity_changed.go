package domainevents

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/changetracking"
)

// EntityChanged represents a set of changes applied to an entity.
//
// The changes are captured when the event is built. Changes tracked afterward are not reflected.
type EntityChanged[E any] struct {
	eventType  string
	entity     E
	changes    []changetracking.MemberChange
	occurredAt OccurredAt
}

// BuildEntityChanged creates a new EntityChanged event from a copy of changes.
func BuildEntityChanged[E any](
	eventType string,
	entity E,
	changes []changetracking.MemberChange,
	occurredAt time.Time,
) EntityChanged[E] {

	return EntityChanged[E]{
		eventType:  eventType,
		entity:     entity,
		changes:    append([]changetracking.MemberChange(nil), changes...),
		occurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e EntityChanged[E]) IsEventType() string {
	return e.eventType
}

// HasOccurredAt returns when this event occurred.
func (e EntityChanged[E]) HasOccurredAt() time.Time {
	return e.occurredAt
}

// Entity returns the changed entity.
func (e EntityChanged[E]) Entity() E {
	return e.entity
}

// Changes returns a copy of the captured changes.
func (e EntityChanged[E]) Changes() []changetracking.MemberChange {
	return append([]changetracking.MemberChange(nil), e.changes...)
}

func (e EntityChanged[E]) HasChanges() bool {
	return len(e.changes) > 0
}

func (e EntityChanged[E]) Describe() string {
	if len(e.changes) == 0 {
		return "No changes"
	}

	var sb strings.Builder
	sb.WriteString(changetracking.DisplayString(e.entity))
	sb.WriteString(" changed.")

	for _, change := range e.changes {
		sb.WriteString(" ")
		sb.WriteString(change.Describe())
		sb.WriteString(".")
	}

	return sb.String()
}

func (e EntityChanged[E]) String() string {
	return e.Describe()
}
