package postgres

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

const (
	dialectPostgres = "postgres"

	logMsgExecutingSQL = "executing sql"
	logAttrSQL         = "sql"
)

// Tables names the tables the repositories work on.
type Tables struct {
	Users           string
	Authentications string
	Applications    string
	AccessRights    string
	AuditLogs       string
}

// DefaultTables returns the default table names.
func DefaultTables() Tables {
	return Tables{
		Users:           "users",
		Authentications: "authentications",
		Applications:    "applications",
		AccessRights:    "access_rights",
		AuditLogs:       "audit_logs",
	}
}

type settings struct {
	tables Tables
	logger shell.Logger
}

// Option defines a functional option for configuring the repositories.
type Option func(*settings) error

// WithTables sets the table names. No name may be empty.
func WithTables(tables Tables) Option {
	return func(s *settings) error {
		for _, name := range []string{
			tables.Users, tables.Authentications, tables.Applications, tables.AccessRights, tables.AuditLogs,
		} {
			if name == "" {
				return ErrEmptyTableName
			}
		}

		s.tables = tables

		return nil
	}
}

// WithLogger sets a logger receiving every executed statement at debug level.
func WithLogger(logger shell.Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

func newSettings(options []Option) (settings, error) {
	s := settings{tables: DefaultTables()}

	for _, option := range options {
		if err := option(&s); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}

func (s settings) logSQL(sqlQuery string) {
	if s.logger != nil {
		s.logger.Debug(logMsgExecutingSQL, logAttrSQL, sqlQuery)
	}
}

// query runs sqlQuery and calls scan for each row.
func (s settings) query(ctx context.Context, db DBAdapter, sqlQuery string, scan func(rows DBRows) error) error {
	s.logSQL(sqlQuery)

	rows, err := db.Query(ctx, sqlQuery)
	if err != nil {
		return errors.Join(ErrQueryingFailed, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			return errors.Join(ErrScanningRowFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return errors.Join(ErrQueryingFailed, rowsErr)
	}

	return nil
}

// insertReturningID runs an INSERT ... RETURNING id statement.
func (s settings) insertReturningID(ctx context.Context, db DBAdapter, sqlQuery string) (int64, error) {
	var id int64
	found := false

	err := s.query(ctx, db, sqlQuery, func(rows DBRows) error {
		found = true
		return rows.Scan(&id)
	})
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, ErrNoIDReturned
	}

	return id, nil
}

func (s settings) exec(ctx context.Context, db DBAdapter, sqlQuery string) error {
	s.logSQL(sqlQuery)

	if _, err := db.Exec(ctx, sqlQuery); err != nil {
		return errors.Join(ErrQueryingFailed, err)
	}

	return nil
}

func toSQL(statement interface {
	ToSQL() (string, []any, error)
}) (string, error) {
	sqlQuery, _, err := statement.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// nullableID maps the ID of a transient or missing entity to NULL.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}

	return id
}
