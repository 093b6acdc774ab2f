// Package shell holds the application infrastructure shared by all feature slices.
//
// The TransactionBoundary runs a unit of work inside a database transaction and dispatches
// the domain events of every entity touched by the work through a Publisher before the
// transaction commits. Event handlers subscribed to the Publisher, like the AuditLogHandler,
// run inside the same transaction.
package shell
