package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/config"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/postgres"
)

// Engine type constants
const (
	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"
)

// Wrapper abstracts over the different connection types.
type Wrapper interface {
	Adapter() postgres.DBAdapter
	Beginner() shell.BeginsTransactions
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
}

func (w *PGXPoolWrapper) Adapter() postgres.DBAdapter {
	return postgres.NewPGXAdapter(w.pool)
}

func (w *PGXPoolWrapper) Beginner() shell.BeginsTransactions {
	return postgres.NewPGXTxBeginner(w.pool)
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db *sql.DB
}

func (w *SQLDBWrapper) Adapter() postgres.DBAdapter {
	return postgres.NewSQLAdapter(w.db)
}

func (w *SQLDBWrapper) Beginner() shell.BeginsTransactions {
	return postgres.NewSQLTxBeginner(w.db)
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close()
}

// SQLXWrapper wraps sqlx-based testing
type SQLXWrapper struct {
	db *sqlx.DB
}

func (w *SQLXWrapper) Adapter() postgres.DBAdapter {
	return postgres.NewSQLXAdapter(w.db)
}

func (w *SQLXWrapper) Beginner() shell.BeginsTransactions {
	return postgres.NewSQLXTxBeginner(w.db)
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close()
}

// CreateWrapperOrSkip connects with the driver named by ADAPTER_TYPE, creates the schema and
// empties all tables. The test is skipped if the database is not reachable.
func CreateWrapperOrSkip(t testing.TB) Wrapper {
	ctx := context.Background()
	wrapper, err := connect(ctx)
	if err != nil {
		t.Skipf("PostgreSQL not reachable: %v", err)
	}

	t.Cleanup(wrapper.Close)

	require.NoError(t, postgres.CreateSchema(ctx, wrapper.Adapter()), "error creating the schema in test setup")
	CleanUp(t, wrapper)

	return wrapper
}

// CleanUp empties all tables for the given wrapper
func CleanUp(t testing.TB, wrapper Wrapper) {
	require.NoError(t, postgres.TruncateAll(context.Background(), wrapper.Adapter()), "error cleaning up the tables")
}

func connect(ctx context.Context) (Wrapper, error) {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		poolConfig, err := config.PostgresPGXPoolConfig()
		if err != nil {
			return nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, err
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		return &PGXPoolWrapper{pool: pool}, nil

	case typeSQLDB:
		db, err := config.PostgresSQLDB(ctx)
		if err != nil {
			return nil, err
		}

		return &SQLDBWrapper{db: db}, nil

	case typeSQLX:
		db, err := config.PostgresSQLXDB(ctx)
		if err != nil {
			return nil, err
		}

		return &SQLXWrapper{db: db}, nil

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}
