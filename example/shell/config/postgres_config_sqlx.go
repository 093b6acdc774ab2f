package config

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXDB opens and pings a *sqlx.DB for the DSN returned by PostgresDSN.
func PostgresSQLXDB(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, PostgresDSN())
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
