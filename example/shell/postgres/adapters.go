package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// DBAdapter runs rendered SQL statements.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

// pgxQuerier is implemented by *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PGXAdapter implements DBAdapter for pgx.
type PGXAdapter struct {
	querier pgxQuerier
}

// NewPGXAdapter creates a PGXAdapter running statements on the pool.
func NewPGXAdapter(pool *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{querier: pool}
}

// NewPGXTxAdapter creates a PGXAdapter running statements inside tx.
func NewPGXTxAdapter(tx pgx.Tx) *PGXAdapter {
	return &PGXAdapter{querier: tx}
}

func (p *PGXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := p.querier.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return &pgxRows{rows: rows}, nil
}

func (p *PGXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	tag, err := p.querier.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return &pgxResult{tag: tag}, nil
}

type pgxRows struct {
	rows pgx.Rows
}

func (p *pgxRows) Next() bool {
	return p.rows.Next()
}

func (p *pgxRows) Scan(dest ...any) error {
	return p.rows.Scan(dest...)
}

func (p *pgxRows) Err() error {
	return p.rows.Err()
}

func (p *pgxRows) Close() error {
	p.rows.Close()
	return nil
}

type pgxResult struct {
	tag pgconn.CommandTag
}

func (p *pgxResult) RowsAffected() (int64, error) {
	return p.tag.RowsAffected(), nil
}

// sqlQuerier is implemented by *sql.DB and *sql.Tx.
type sqlQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLAdapter implements DBAdapter for database/sql.
type SQLAdapter struct {
	querier sqlQuerier
}

// NewSQLAdapter creates an SQLAdapter running statements on db.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{querier: db}
}

// NewSQLTxAdapter creates an SQLAdapter running statements inside tx.
func NewSQLTxAdapter(tx *sql.Tx) *SQLAdapter {
	return &SQLAdapter{querier: tx}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.querier.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return s.querier.ExecContext(ctx, query)
}

// sqlxQuerier is implemented by *sqlx.DB and *sqlx.Tx.
type sqlxQuerier interface {
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLXAdapter implements DBAdapter for sqlx.
type SQLXAdapter struct {
	querier sqlxQuerier
}

// NewSQLXAdapter creates an SQLXAdapter running statements on db.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{querier: db}
}

// NewSQLXTxAdapter creates an SQLXAdapter running statements inside tx.
func NewSQLXTxAdapter(tx *sqlx.Tx) *SQLXAdapter {
	return &SQLXAdapter{querier: tx}
}

func (s *SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.querier.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return s.querier.ExecContext(ctx, query)
}
