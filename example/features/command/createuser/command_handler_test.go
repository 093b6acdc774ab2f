package createuser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/command/createuser"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/testutil/helper"
)

type testEnvironment struct {
	handler   createuser.CommandHandler
	beginner  *helper.FakeTransactionBeginner
	users     *helper.InMemoryUserRepository
	auditLogs *helper.InMemoryAuditLogRepository
}

func setupTestEnvironment(t *testing.T, users createuser.UserRepository) testEnvironment {
	t.Helper()

	env := testEnvironment{
		beginner:  helper.NewFakeTransactionBeginner(),
		users:     helper.NewInMemoryUserRepository(),
		auditLogs: helper.NewInMemoryAuditLogRepository(),
	}

	if users == nil {
		users = env.users
	}

	publisher, err := shell.NewPublisher()
	require.NoError(t, err)
	shell.NewAuditLogHandler(env.auditLogs).SubscribeTo(publisher)

	boundary, err := shell.NewTransactionBoundary(env.beginner, publisher)
	require.NoError(t, err)

	env.handler = createuser.NewCommandHandler(boundary, users)

	return env
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	env := setupTestEnvironment(t, nil)

	// act
	view, err := env.handler.Handle(context.Background(), createuser.BuildCommand())

	// assert
	require.NoError(t, err)

	stored, err := env.users.GetByObjectID(context.Background(), view.UserObjectID)
	require.NoError(t, err)
	assert.NotZero(t, stored.ID())
	assert.Nil(t, view.Authentication)
	assert.Empty(t, view.AccessRights)

	expectedDescription := "Entity created: [User: " + view.UserObjectID.String() + "]"
	assert.Equal(t, []string{expectedDescription}, view.DomainEvents)

	auditLogs, err := env.auditLogs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, auditLogs, 1)
	assert.Equal(t, expectedDescription, auditLogs[0].Log)

	assert.True(t, env.beginner.LastTransaction().Committed())
	assert.Empty(t, stored.CollectEvents(), "events are cleared after commit")
}

type failingUserRepository struct{ err error }

func (r failingUserRepository) Add(context.Context, *core.User) error { return r.err }

func Test_CommandHandler_Handle_RepositoryFails(t *testing.T) {
	// arrange
	addErr := errors.New("unique violation")
	env := setupTestEnvironment(t, failingUserRepository{err: addErr})

	// act
	view, err := env.handler.Handle(context.Background(), createuser.BuildCommand())

	// assert
	assert.ErrorIs(t, err, addErr)
	assert.Equal(t, shell.UserView{}, view)
	assert.True(t, env.beginner.LastTransaction().RolledBack())

	auditLogs, err := env.auditLogs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auditLogs, "no event is dispatched for a failed unit of work")
}
