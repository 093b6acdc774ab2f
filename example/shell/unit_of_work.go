package shell

import (
	"context"
	"slices"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

type unitOfWorkKey struct{}

// UnitOfWork is the state of one run of a TransactionBoundary: the open transaction and the
// entities whose domain events are dispatched before the transaction commits.
type UnitOfWork struct {
	transaction Transaction
	entities    []domainevents.HasDomainEvents
}

// Track registers an entity for event dispatch. Registering the same entity twice has no effect.
func (u *UnitOfWork) Track(entity domainevents.HasDomainEvents) {
	if entity == nil || slices.Contains(u.entities, entity) {
		return
	}

	u.entities = append(u.entities, entity)
}

// Transaction returns the transaction the unit of work runs in.
func (u *UnitOfWork) Transaction() Transaction {
	return u.transaction
}

// Entities returns the tracked entities in registration order.
func (u *UnitOfWork) Entities() []domainevents.HasDomainEvents {
	return slices.Clone(u.entities)
}

// WithUnitOfWork returns a context carrying the unit of work.
func WithUnitOfWork(ctx context.Context, unitOfWork *UnitOfWork) context.Context {
	return context.WithValue(ctx, unitOfWorkKey{}, unitOfWork)
}

// UnitOfWorkFrom returns the unit of work carried by ctx, if any.
func UnitOfWorkFrom(ctx context.Context) (*UnitOfWork, bool) {
	unitOfWork, ok := ctx.Value(unitOfWorkKey{}).(*UnitOfWork)

	return unitOfWork, ok && unitOfWork != nil
}

// TransactionFrom returns the transaction of the unit of work carried by ctx, if any.
func TransactionFrom(ctx context.Context) (Transaction, bool) {
	unitOfWork, ok := UnitOfWorkFrom(ctx)
	if !ok || unitOfWork.transaction == nil {
		return nil, false
	}

	return unitOfWork.transaction, true
}
