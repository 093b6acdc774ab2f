package helper

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

// ErrNotFound is returned by the in-memory repositories for unknown entities.
var ErrNotFound = errors.New("not found")

// InMemoryUserRepository keeps users in memory and assigns IDs like a database would.
type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  []*core.User
	nextID int64
	saves  int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{}
}

// Add stores user and assigns IDs to it and its members.
func (r *InMemoryUserRepository) Add(_ context.Context, user *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.AssignID(rehydration.Grant(), r.generateID())
	r.assignMemberIDs(user)
	r.users = append(r.users, user)

	return nil
}

// Save assigns IDs to members added since the user was stored.
func (r *InMemoryUserRepository) Save(_ context.Context, user *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.users, user) {
		return ErrNotFound
	}

	r.assignMemberIDs(user)
	r.saves++

	return nil
}

func (r *InMemoryUserRepository) GetByObjectID(_ context.Context, objectID uuid.UUID) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ObjectID() == objectID {
			return user, nil
		}
	}

	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) List(_ context.Context) ([]*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.users), nil
}

// Saves returns how often Save succeeded.
func (r *InMemoryUserRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saves
}

func (r *InMemoryUserRepository) assignMemberIDs(user *core.User) {
	token := rehydration.Grant()

	if authentication := user.Authentication(); authentication != nil && authentication.ID() == 0 {
		authentication.AssignID(token, r.generateID())
	}

	for _, accessRight := range user.AccessRights() {
		if accessRight.ID() == 0 {
			accessRight.AssignID(token, r.generateID())
		}
	}
}

func (r *InMemoryUserRepository) generateID() int64 {
	r.nextID++
	return r.nextID
}

// InMemoryApplicationRepository returns its applications in turn instead of randomly.
type InMemoryApplicationRepository struct {
	mu           sync.Mutex
	applications []*core.Application
	next         int
}

// NewInMemoryApplicationRepository creates a repository holding persisted applications with the given codes.
func NewInMemoryApplicationRepository(codes ...string) *InMemoryApplicationRepository {
	repository := &InMemoryApplicationRepository{}
	for i, code := range codes {
		repository.applications = append(
			repository.applications,
			core.ReconstructApplication(rehydration.Grant(), int64(i+1), code),
		)
	}

	return repository
}

func (r *InMemoryApplicationRepository) GetRandom(_ context.Context) (*core.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.applications) == 0 {
		return nil, ErrNotFound
	}

	application := r.applications[r.next%len(r.applications)]
	r.next++

	return application, nil
}

// InMemoryAuditLogRepository keeps audit logs in memory.
type InMemoryAuditLogRepository struct {
	mu   sync.Mutex
	logs []core.AuditLog
}

func NewInMemoryAuditLogRepository() *InMemoryAuditLogRepository {
	return &InMemoryAuditLogRepository{}
}

func (r *InMemoryAuditLogRepository) Append(_ context.Context, auditLog core.AuditLog) (core.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auditLog.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, auditLog)

	return auditLog, nil
}

func (r *InMemoryAuditLogRepository) List(_ context.Context) ([]core.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.logs), nil
}
