// Package config provides PostgreSQL connection configuration for the user administration example.
//
// The factory functions create connections for the supported drivers (pgxpool.Pool, sql.DB
// with lib/pq, sqlx.DB) from one DSN, which can be overridden through the environment.
package config
