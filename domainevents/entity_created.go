package domainevents

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/changetracking"
)

// EntityCreated represents the creation of an entity.
type EntityCreated[E any] struct {
	eventType  string
	entity     E
	occurredAt OccurredAt
}

// BuildEntityCreated creates a new EntityCreated event.
func BuildEntityCreated[E any](eventType string, entity E, occurredAt time.Time) EntityCreated[E] {
	return EntityCreated[E]{
		eventType:  eventType,
		entity:     entity,
		occurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e EntityCreated[E]) IsEventType() string {
	return e.eventType
}

// HasOccurredAt returns when this event occurred.
func (e EntityCreated[E]) HasOccurredAt() time.Time {
	return e.occurredAt
}

// Entity returns the created entity.
func (e EntityCreated[E]) Entity() E {
	return e.entity
}

func (e EntityCreated[E]) Describe() string {
	return fmt.Sprintf("Entity created: [%s]", changetracking.DisplayString(e.entity))
}

func (e EntityCreated[E]) String() string {
	return e.Describe()
}
