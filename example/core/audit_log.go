package core

import (
	"time"
)

// AuditLog is a human-readable line describing something that happened.
type AuditLog struct {
	ID        int64
	Log       string
	CreatedAt time.Time
}

// BuildAuditLog creates a new AuditLog.
func BuildAuditLog(log string, createdAt time.Time) AuditLog {
	return AuditLog{
		Log:       log,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
}
