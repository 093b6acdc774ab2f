package shell

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails.
var ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails.
var ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

// ErrEmptyEventType is returned when a domain event reports an empty event type.
var ErrEmptyEventType = errors.New("event type must not be empty")

// StorableEvent is the serialized form of a domain event, e.g. for an outbox or a message broker.
type StorableEvent struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

type storablePayload struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	Description string    `json:"description"`
}

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent.
//
// Entity events reference live entities, so the payload carries the rendered description
// rather than the entity itself.
func StorableEventFrom(event domainevents.DomainEvent, metadata EventMetadata) (StorableEvent, error) {
	if event.IsEventType() == "" {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, ErrEmptyEventType)
	}

	payloadJSON, err := jsoniter.ConfigFastest.Marshal(storablePayload{
		EventType:   event.IsEventType(),
		OccurredAt:  event.HasOccurredAt(),
		Description: event.Describe(),
	})
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	return StorableEvent{
		EventType:    event.IsEventType(),
		OccurredAt:   event.HasOccurredAt(),
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// DescriptionFrom extracts the event description from a StorableEvent.
func DescriptionFrom(storableEvent StorableEvent) (string, error) {
	payload := new(storablePayload)
	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.PayloadJSON, payload); err != nil {
		return "", errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return payload.Description, nil
}
