package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

// TransactionalAdapter is a transaction exposing the DBAdapter that runs statements inside it.
type TransactionalAdapter interface {
	shell.Transaction
	Adapter() DBAdapter
}

// adapterFrom returns the adapter of the transaction running in ctx, or fallback.
func adapterFrom(ctx context.Context, fallback DBAdapter) DBAdapter {
	if tx, ok := shell.TransactionFrom(ctx); ok {
		if transactional, ok := tx.(TransactionalAdapter); ok {
			return transactional.Adapter()
		}
	}

	return fallback
}

// PGXTxBeginner begins transactions on a pgx pool.
type PGXTxBeginner struct {
	pool *pgxpool.Pool
}

func NewPGXTxBeginner(pool *pgxpool.Pool) PGXTxBeginner {
	return PGXTxBeginner{pool: pool}
}

func (b PGXTxBeginner) Begin(ctx context.Context) (shell.Transaction, error) {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return pgxTransaction{tx: tx}, nil
}

type pgxTransaction struct {
	tx pgx.Tx
}

func (t pgxTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgxTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t pgxTransaction) Adapter() DBAdapter {
	return NewPGXTxAdapter(t.tx)
}

// SQLTxBeginner begins transactions on a database/sql pool.
type SQLTxBeginner struct {
	db *sql.DB
}

func NewSQLTxBeginner(db *sql.DB) SQLTxBeginner {
	return SQLTxBeginner{db: db}
}

func (b SQLTxBeginner) Begin(ctx context.Context) (shell.Transaction, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return sqlTransaction{tx: tx}, nil
}

// sqlTransaction ignores the context on commit and rollback, database/sql binds it on begin.
type sqlTransaction struct {
	tx *sql.Tx
}

func (t sqlTransaction) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t sqlTransaction) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}

func (t sqlTransaction) Adapter() DBAdapter {
	return NewSQLTxAdapter(t.tx)
}

// SQLXTxBeginner begins transactions on an sqlx pool.
type SQLXTxBeginner struct {
	db *sqlx.DB
}

func NewSQLXTxBeginner(db *sqlx.DB) SQLXTxBeginner {
	return SQLXTxBeginner{db: db}
}

func (b SQLXTxBeginner) Begin(ctx context.Context) (shell.Transaction, error) {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return sqlxTransaction{tx: tx}, nil
}

type sqlxTransaction struct {
	tx *sqlx.Tx
}

func (t sqlxTransaction) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t sqlxTransaction) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}

func (t sqlxTransaction) Adapter() DBAdapter {
	return NewSQLXTxAdapter(t.tx)
}
