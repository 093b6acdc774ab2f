package shell

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

const (
	logMsgBeginFailed       = "failed to begin transaction"
	logMsgWorkFailed        = "unit of work failed, rolling back"
	logMsgDispatchFailed    = "dispatching domain events failed, rolling back"
	logMsgCommitFailed      = "failed to commit transaction"
	logMsgRollbackFailed    = "failed to roll back transaction"
	logMsgCommitted         = "transaction committed"
	logMsgJoinedTransaction = "joined running transaction"
)

// Work is the function a TransactionBoundary runs inside a transaction.
// Entities it touches must be registered with unitOfWork.Track.
type Work func(ctx context.Context, unitOfWork *UnitOfWork) error

// TransactionBoundary runs units of work inside a database transaction.
//
// After the work succeeded, the events of all tracked entities are collected and published in
// order. The transaction commits once all events were dispatched, then the events of the
// entities are cleared. On any failure the transaction is rolled back and the events stay on
// the entities.
type TransactionBoundary struct {
	beginner         BeginsTransactions
	publisher        PublishesEvents
	logger           Logger
	metricsCollector MetricsCollector
}

// TransactionBoundaryOption defines a functional option for configuring a TransactionBoundary.
type TransactionBoundaryOption func(*TransactionBoundary) error

// WithLogger sets the logger. Without a logger nothing is logged.
func WithLogger(logger Logger) TransactionBoundaryOption {
	return func(b *TransactionBoundary) error {
		b.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector MetricsCollector) TransactionBoundaryOption {
	return func(b *TransactionBoundary) error {
		b.metricsCollector = collector
		return nil
	}
}

// NewTransactionBoundary creates a TransactionBoundary.
func NewTransactionBoundary(
	beginner BeginsTransactions,
	publisher PublishesEvents,
	options ...TransactionBoundaryOption,
) (TransactionBoundary, error) {

	if beginner == nil {
		return TransactionBoundary{}, ErrNilTransactionBeginner
	}

	if publisher == nil {
		return TransactionBoundary{}, ErrNilEventPublisher
	}

	boundary := TransactionBoundary{
		beginner:  beginner,
		publisher: publisher,
	}

	for _, option := range options {
		if err := option(&boundary); err != nil {
			return TransactionBoundary{}, err
		}
	}

	return boundary, nil
}

// Run runs work inside a transaction. If ctx already carries a unit of work, work joins it
// and the outer run is responsible for dispatching and committing.
func (b TransactionBoundary) Run(ctx context.Context, work Work) error {
	if unitOfWork, ok := UnitOfWorkFrom(ctx); ok {
		b.logDebug(logMsgJoinedTransaction)

		return work(ctx, unitOfWork)
	}

	start := time.Now()

	transaction, err := b.beginner.Begin(ctx)
	if err != nil {
		b.logError(logMsgBeginFailed, LogAttrError, err.Error())
		b.recordMetrics(StatusFrom(err), time.Since(start), 0)

		return errors.Join(ErrBeginTransactionFailed, err)
	}

	unitOfWork := &UnitOfWork{transaction: transaction}
	ctx = WithUnitOfWork(ctx, unitOfWork)

	if workErr := work(ctx, unitOfWork); workErr != nil {
		return b.rollback(ctx, unitOfWork, start, logMsgWorkFailed, workErr)
	}

	dispatched, dispatchErr := b.dispatch(ctx, unitOfWork)
	if dispatchErr != nil {
		return b.rollback(ctx, unitOfWork, start, logMsgDispatchFailed, dispatchErr)
	}

	if commitErr := transaction.Commit(ctx); commitErr != nil {
		return b.rollback(ctx, unitOfWork, start, logMsgCommitFailed, errors.Join(ErrCommitTransactionFailed, commitErr))
	}

	for _, entity := range unitOfWork.entities {
		entity.ClearEvents()
	}

	duration := time.Since(start)
	b.logDebug(logMsgCommitted, LogAttrEventCount, dispatched, LogAttrDurationMS, ToMilliseconds(duration))
	b.recordMetrics(StatusSuccess, duration, dispatched)

	return nil
}

// dispatch collects the events of all tracked entities first, then publishes them in order.
func (b TransactionBoundary) dispatch(ctx context.Context, unitOfWork *UnitOfWork) (int, error) {
	var events domainevents.DomainEvents
	for _, entity := range unitOfWork.entities {
		events = append(events, entity.CollectEvents()...)
	}

	for i, event := range events {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		if err := b.publisher.Publish(ctx, event); err != nil {
			return i, err
		}
	}

	return len(events), nil
}

func (b TransactionBoundary) rollback(
	ctx context.Context,
	unitOfWork *UnitOfWork,
	start time.Time,
	logMsg string,
	cause error,
) error {

	b.logWarn(logMsg, LogAttrError, cause.Error())

	if rollbackErr := unitOfWork.transaction.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
		b.logError(logMsgRollbackFailed, LogAttrError, rollbackErr.Error())
		cause = errors.Join(cause, ErrRollbackTransactionFailed, rollbackErr)
	}

	b.recordMetrics(StatusFrom(cause), time.Since(start), 0)

	return cause
}

func (b TransactionBoundary) recordMetrics(status string, duration time.Duration, dispatched int) {
	if b.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrStatus: status}
	b.metricsCollector.RecordDuration(TransactionDurationMetric, duration, labels)
	b.metricsCollector.IncrementCounter(TransactionsMetric, labels)

	if status == StatusSuccess {
		b.metricsCollector.RecordValue(DispatchedEventsMetric, float64(dispatched), labels)
	}
}

func (b TransactionBoundary) logDebug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

func (b TransactionBoundary) logWarn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}

func (b TransactionBoundary) logError(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Error(msg, args...)
	}
}
