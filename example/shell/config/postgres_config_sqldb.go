package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// ErrConnectingFailed is returned when the database cannot be reached.
var ErrConnectingFailed = errors.New("connecting to postgres failed")

const (
	defaultMaxOpenConnections = 50
	defaultMaxIdleConnections = 10
	driverName                = "postgres"
)

// PostgresSQLDB opens and pings a *sql.DB for the DSN returned by PostgresDSN.
func PostgresSQLDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(driverName, PostgresDSN())
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingFailed, pingErr)
	}

	return db, nil
}

type poolSettings interface {
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
	SetConnMaxLifetime(d time.Duration)
	SetConnMaxIdleTime(d time.Duration)
}

func configurePool(db poolSettings) {
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
