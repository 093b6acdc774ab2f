package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

const (
	logMsgEventPublished   = "domain event published"
	logMsgEventHandlerFail = "domain event handler failed"
	logAttrHandlerCount    = "handler_count"
)

// Publisher fans domain events out to the handlers subscribed to their event type.
//
// Handlers run synchronously in subscription order: first those subscribed to the event type,
// then those subscribed to all events. Publishing stops at the first failing handler.
type Publisher struct {
	mu               sync.RWMutex
	handlers         map[string][]HandlesEvents
	catchAll         []HandlesEvents
	logger           Logger
	metricsCollector MetricsCollector
}

// PublisherOption defines a functional option for configuring a Publisher.
type PublisherOption func(*Publisher) error

// WithPublisherLogger sets the logger of a Publisher.
func WithPublisherLogger(logger Logger) PublisherOption {
	return func(p *Publisher) error {
		p.logger = logger
		return nil
	}
}

// WithPublisherMetrics sets the metrics collector of a Publisher.
func WithPublisherMetrics(collector MetricsCollector) PublisherOption {
	return func(p *Publisher) error {
		p.metricsCollector = collector
		return nil
	}
}

// NewPublisher creates a Publisher without subscriptions.
func NewPublisher(options ...PublisherOption) (*Publisher, error) {
	publisher := &Publisher{handlers: make(map[string][]HandlesEvents)}

	for _, option := range options {
		if err := option(publisher); err != nil {
			return nil, err
		}
	}

	return publisher, nil
}

// Subscribe registers a handler for events of one type.
func (p *Publisher) Subscribe(eventType string, handler HandlesEvents) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers[eventType] = append(p.handlers[eventType], handler)
}

// SubscribeAll registers a handler for events of every type.
func (p *Publisher) SubscribeAll(handler HandlesEvents) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.catchAll = append(p.catchAll, handler)
}

// Publish calls the handlers subscribed to the event.
func (p *Publisher) Publish(ctx context.Context, event domainevents.DomainEvent) error {
	eventType := event.IsEventType()

	p.mu.RLock()
	handlers := make([]HandlesEvents, 0, len(p.handlers[eventType])+len(p.catchAll))
	handlers = append(handlers, p.handlers[eventType]...)
	handlers = append(handlers, p.catchAll...)
	p.mu.RUnlock()

	for _, handler := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := handler.Handle(ctx, event); err != nil {
			if p.logger != nil {
				p.logger.Warn(logMsgEventHandlerFail, LogAttrEventType, eventType, LogAttrError, err.Error())
			}

			return errors.Join(
				ErrDispatchingEventFailed,
				fmt.Errorf("handler for %s failed: %w", eventType, err),
			)
		}
	}

	if p.logger != nil {
		p.logger.Debug(logMsgEventPublished, LogAttrEventType, eventType, logAttrHandlerCount, len(handlers))
	}

	if p.metricsCollector != nil {
		p.metricsCollector.IncrementCounter(PublishedEventsMetric, map[string]string{LogAttrEventType: eventType})
	}

	return nil
}
