package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/postgres"
)

// fakeDB records every statement and answers queries with the queued result sets in order.
type fakeDB struct {
	statements []string
	results    [][][]any
	queryErr   error
}

func newFakeDB(results ...[][]any) *fakeDB {
	return &fakeDB{results: results}
}

func (f *fakeDB) Query(_ context.Context, query string) (postgres.DBRows, error) {
	f.statements = append(f.statements, query)

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var rows [][]any
	if len(f.results) > 0 {
		rows, f.results = f.results[0], f.results[1:]
	}

	return &fakeRows{rows: rows, index: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (postgres.DBResult, error) {
	f.statements = append(f.statements, query)

	return fakeResult(1), nil
}

type fakeRows struct {
	rows  [][]any
	index int
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.index]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d columns, got %d", len(dest), len(row))
	}

	for i, target := range dest {
		if scanner, ok := target.(sql.Scanner); ok {
			if err := scanner.Scan(row[i]); err != nil {
				return err
			}
			continue
		}

		reflect.ValueOf(target).Elem().Set(reflect.ValueOf(row[i]))
	}

	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

type fakeResult int64

func (r fakeResult) RowsAffected() (int64, error) {
	return int64(r), nil
}

// fakeTransaction runs statements on its own fakeDB.
type fakeTransaction struct {
	db        *fakeDB
	committed bool
}

func (t *fakeTransaction) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTransaction) Rollback(_ context.Context) error {
	return nil
}

func (t *fakeTransaction) Adapter() postgres.DBAdapter {
	return t.db
}

type fakeBeginner struct {
	transaction *fakeTransaction
}

func (b fakeBeginner) Begin(_ context.Context) (shell.Transaction, error) {
	return b.transaction, nil
}
