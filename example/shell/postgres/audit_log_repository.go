package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
)

const (
	colLog       = "log"
	colCreatedAt = "created_at"
)

// AuditLogRepository stores audit log lines.
type AuditLogRepository struct {
	db       DBAdapter
	settings settings
}

// NewAuditLogRepository creates an AuditLogRepository running statements on db outside of transactions.
func NewAuditLogRepository(db DBAdapter, options ...Option) (AuditLogRepository, error) {
	s, err := newSettings(options)
	if err != nil {
		return AuditLogRepository{}, err
	}

	return AuditLogRepository{db: db, settings: s}, nil
}

// Append stores auditLog and returns it with its generated ID.
func (r AuditLogRepository) Append(ctx context.Context, auditLog core.AuditLog) (core.AuditLog, error) {
	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		Insert(r.settings.tables.AuditLogs).
		Rows(goqu.Record{colLog: auditLog.Log, colCreatedAt: auditLog.CreatedAt}).
		Returning(goqu.C(colID)))
	if err != nil {
		return core.AuditLog{}, err
	}

	id, err := r.settings.insertReturningID(ctx, adapterFrom(ctx, r.db), sqlQuery)
	if err != nil {
		return core.AuditLog{}, err
	}

	auditLog.ID = id

	return auditLog, nil
}

// List returns all audit log lines in the order they were appended.
func (r AuditLogRepository) List(ctx context.Context) ([]core.AuditLog, error) {
	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		From(r.settings.tables.AuditLogs).
		Select(colID, colLog, colCreatedAt).
		Order(goqu.C(colID).Asc()))
	if err != nil {
		return nil, err
	}

	auditLogs := make([]core.AuditLog, 0)
	err = r.settings.query(ctx, adapterFrom(ctx, r.db), sqlQuery, func(rows DBRows) error {
		var auditLog core.AuditLog
		if scanErr := rows.Scan(&auditLog.ID, &auditLog.Log, &auditLog.CreatedAt); scanErr != nil {
			return scanErr
		}

		auditLogs = append(auditLogs, auditLog)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return auditLogs, nil
}
