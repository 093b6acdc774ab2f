// Package postgres persists the user administration example in PostgreSQL.
//
// Repositories build their SQL with goqu and run it through a DBAdapter, so the same code works
// with pgx, database/sql (lib/pq) and sqlx. Inside a TransactionBoundary run the repositories
// use the adapter of the running transaction.
package postgres
