// Package postgreswrapper connects tests to PostgreSQL through one of the supported drivers.
//
// The driver is chosen with the ADAPTER_TYPE environment variable: "pgxpool" (default), "sqldb" or "sqlx".
package postgreswrapper
