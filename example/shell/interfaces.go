package shell

import (
	"context"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

// Logger interface for operational logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Transaction is a database transaction as seen by the TransactionBoundary.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// BeginsTransactions starts database transactions.
type BeginsTransactions interface {
	Begin(ctx context.Context) (Transaction, error)
}

// PublishesEvents hands domain events to their subscribers.
type PublishesEvents interface {
	Publish(ctx context.Context, event domainevents.DomainEvent) error
}

// HandlesEvents reacts to a published domain event.
type HandlesEvents interface {
	Handle(ctx context.Context, event domainevents.DomainEvent) error
}

// EventHandlerFunc adapts a function to HandlesEvents.
type EventHandlerFunc func(ctx context.Context, event domainevents.DomainEvent) error

// Handle calls f(ctx, event).
func (f EventHandlerFunc) Handle(ctx context.Context, event domainevents.DomainEvent) error {
	return f(ctx, event)
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CommandHandler defines the contract for components that process commands.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// QueryHandler defines the contract for components that process queries.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
