package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

const (
	logMsgEventJournaled = "domain event journaled"
	logAttrPayload       = "payload"
	logAttrMetadata      = "metadata"
)

// ErrGeneratingMessageIDFailed is returned when no message ID can be generated for an event.
var ErrGeneratingMessageIDFailed = errors.New("generating message ID failed")

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying the ID that correlates all events caused by one request.
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// CorrelationIDFrom returns the correlation ID carried by ctx, if any.
func CorrelationIDFrom(ctx context.Context) (uuid.UUID, bool) {
	correlationID, ok := ctx.Value(correlationIDKey{}).(uuid.UUID)

	return correlationID, ok
}

// EventJournalHandler writes every published event in its storable form to the log.
type EventJournalHandler struct {
	logger Logger
}

// NewEventJournalHandler creates an EventJournalHandler.
func NewEventJournalHandler(logger Logger) EventJournalHandler {
	return EventJournalHandler{logger: logger}
}

// SubscribeTo registers the handler for all events.
func (h EventJournalHandler) SubscribeTo(publisher *Publisher) {
	publisher.SubscribeAll(h)
}

// Handle maps the event to a StorableEvent and logs it at info level.
// The message ID is fresh; without a correlation ID in ctx the message ID is used for both
// causation and correlation.
func (h EventJournalHandler) Handle(ctx context.Context, event domainevents.DomainEvent) error {
	messageID, err := uuid.NewV7()
	if err != nil {
		return errors.Join(ErrGeneratingMessageIDFailed, err)
	}

	correlationID, ok := CorrelationIDFrom(ctx)
	if !ok {
		correlationID = messageID
	}

	storableEvent, err := StorableEventFrom(event, BuildEventMetadata(messageID, correlationID, correlationID))
	if err != nil {
		return err
	}

	if h.logger != nil {
		h.logger.Info(
			logMsgEventJournaled,
			LogAttrEventType, storableEvent.EventType,
			logAttrPayload, string(storableEvent.PayloadJSON),
			logAttrMetadata, string(storableEvent.MetadataJSON),
		)
	}

	return nil
}
