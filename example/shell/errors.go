package shell

import "errors"

var (
	// ErrBeginTransactionFailed is returned when a transaction cannot be started.
	ErrBeginTransactionFailed = errors.New("beginning transaction failed")

	// ErrCommitTransactionFailed is returned when a transaction cannot be committed.
	ErrCommitTransactionFailed = errors.New("committing transaction failed")

	// ErrRollbackTransactionFailed is returned when a transaction cannot be rolled back.
	ErrRollbackTransactionFailed = errors.New("rolling back transaction failed")

	// ErrDispatchingEventFailed is returned when an event handler fails.
	ErrDispatchingEventFailed = errors.New("dispatching domain event failed")

	// ErrNilTransactionBeginner is returned when a TransactionBoundary is built without a transaction source.
	ErrNilTransactionBeginner = errors.New("transaction beginner must not be nil")

	// ErrNilEventPublisher is returned when a TransactionBoundary is built without a publisher.
	ErrNilEventPublisher = errors.New("event publisher must not be nil")

	// ErrStoringAuditLogFailed is returned when the audit log of an event cannot be stored.
	ErrStoringAuditLogFailed = errors.New("storing audit log failed")
)
