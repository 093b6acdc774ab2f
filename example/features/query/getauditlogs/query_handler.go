package getauditlogs

import (
	"context"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
)

// AuditLogRepository defines the interface needed by the QueryHandler to load audit logs.
type AuditLogRepository interface {
	List(ctx context.Context) ([]core.AuditLog, error)
}

// QueryHandler lists audit log lines.
type QueryHandler struct {
	auditLogs AuditLogRepository
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(auditLogs AuditLogRepository) QueryHandler {
	return QueryHandler{auditLogs: auditLogs}
}

func (h QueryHandler) Handle(ctx context.Context, _ Query) (AuditLogs, error) {
	auditLogs, err := h.auditLogs.List(ctx)
	if err != nil {
		return AuditLogs{}, err
	}

	result := AuditLogs{Logs: make([]string, 0, len(auditLogs))}
	for _, auditLog := range auditLogs {
		result.Logs = append(result.Logs, auditLog.Log)
	}

	return result, nil
}
