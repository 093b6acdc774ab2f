package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/command/createuser"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/command/updateuser"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/postgres"
	"github.com/AntonStoeckl/entity-change-events-go/testutil/helper"
	"github.com/AntonStoeckl/entity-change-events-go/testutil/helper/postgreswrapper"
)

type integrationFixture struct {
	users        postgres.UserRepository
	applications postgres.ApplicationRepository
	auditLogs    postgres.AuditLogRepository
	createUser   createuser.CommandHandler
	updateUser   updateuser.CommandHandler
}

func givenIntegrationFixture(t *testing.T) integrationFixture {
	wrapper := postgreswrapper.CreateWrapperOrSkip(t)
	db := wrapper.Adapter()

	users, err := postgres.NewUserRepository(db)
	require.NoError(t, err)
	applications, err := postgres.NewApplicationRepository(db)
	require.NoError(t, err)
	auditLogs, err := postgres.NewAuditLogRepository(db)
	require.NoError(t, err)

	publisher, err := shell.NewPublisher()
	require.NoError(t, err)
	shell.NewAuditLogHandler(auditLogs).SubscribeTo(publisher)

	boundary, err := shell.NewTransactionBoundary(wrapper.Beginner(), publisher)
	require.NoError(t, err)

	require.NoError(t, applications.Add(context.Background(), core.NewApplication("ERP")))

	return integrationFixture{
		users:        users,
		applications: applications,
		auditLogs:    auditLogs,
		createUser:   createuser.NewCommandHandler(boundary, users),
		updateUser:   updateuser.NewCommandHandler(boundary, users, applications, helper.NewSequenceRandomStringGenerator("r")),
	}
}

func Test_Integration_CreateAndUpdateUser(t *testing.T) {
	// arrange
	ctx := context.Background()
	fixture := givenIntegrationFixture(t)

	created, err := fixture.createUser.Handle(ctx, createuser.BuildCommand())
	require.NoError(t, err)

	// act
	updated, err := fixture.updateUser.Handle(ctx, updateuser.BuildCommand(created.UserObjectID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, created.UserObjectID, updated.UserObjectID)
	require.Len(t, updated.DomainEvents, 1)

	reloaded, err := fixture.users.GetByObjectID(ctx, created.UserObjectID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Authentication())
	assert.Equal(t, "r2", reloaded.Authentication().Username())
	require.Len(t, reloaded.AccessRights(), 1)
	assert.Equal(t, "r1", reloaded.AccessRights()[0].ApplicationUserID())
	assert.Equal(t, "ERP", reloaded.AccessRights()[0].Application().Code())
	assert.Empty(t, reloaded.CollectEvents())

	logs, err := fixture.auditLogs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, created.DomainEvents[0], logs[0].Log)
}

func Test_Integration_UpdateUnknownUserRollsBack(t *testing.T) {
	// arrange
	ctx := context.Background()
	fixture := givenIntegrationFixture(t)

	// act
	_, err := fixture.updateUser.Handle(ctx, updateuser.BuildCommand(helper.GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, postgres.ErrUserNotFound)
}
