package shell

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
	"github.com/AntonStoeckl/entity-change-events-go/example/core"
)

// StoresAuditLogs appends audit log lines.
type StoresAuditLogs interface {
	Append(ctx context.Context, auditLog core.AuditLog) (core.AuditLog, error)
}

// AuditLogHandler writes the description of each handled event to the audit log.
type AuditLogHandler struct {
	store StoresAuditLogs
	clock func() time.Time
}

// NewAuditLogHandler creates an AuditLogHandler.
func NewAuditLogHandler(store StoresAuditLogs) AuditLogHandler {
	return AuditLogHandler{store: store, clock: time.Now}
}

// SubscribeTo registers the handler for UserEntityCreated events.
func (h AuditLogHandler) SubscribeTo(publisher *Publisher) {
	publisher.Subscribe(core.UserEntityCreatedEventType, h)
}

// Handle stores the event description. Events with an empty description are skipped.
func (h AuditLogHandler) Handle(ctx context.Context, event domainevents.DomainEvent) error {
	description := event.Describe()
	if description == "" {
		return nil
	}

	if _, err := h.store.Append(ctx, core.BuildAuditLog(description, h.clock())); err != nil {
		return errors.Join(ErrStoringAuditLogFailed, err)
	}

	return nil
}
