package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

func createUser(t *testing.T) *core.User {
	t.Helper()

	user, err := core.CreateUser(time.Unix(0, 0))
	require.NoError(t, err)

	return user
}

func eventsOfType(events domainevents.DomainEvents, eventType string) domainevents.DomainEvents {
	var filtered domainevents.DomainEvents
	for _, event := range events {
		if event.IsEventType() == eventType {
			filtered = append(filtered, event)
		}
	}

	return filtered
}

func singleChangedEvent(t *testing.T, events domainevents.DomainEvents) core.UserEntityChanged {
	t.Helper()

	changed := eventsOfType(events, core.UserEntityChangedEventType)
	require.Len(t, changed, 1)

	event, ok := changed[0].(core.UserEntityChanged)
	require.True(t, ok)

	return event
}

func Test_CreateUser_EmitsUserEntityCreated(t *testing.T) {
	// arrange
	user := createUser(t)

	// act
	events := user.CollectEvents()

	// assert
	require.Len(t, events, 1)
	created, ok := events[0].(core.UserEntityCreated)
	require.True(t, ok)
	assert.Same(t, user, created.Entity())
	assert.Equal(t, "Entity created: [User: "+user.ObjectID().String()+"]", created.Describe())
	assert.Equal(t, uint8(7), uint8(user.ObjectID().Version()), "object IDs must be UUIDv7")
}

func Test_User_AddAuthentication_EmitsSingleChangeFromFirstToLastValue(t *testing.T) {
	// arrange
	user := createUser(t)
	first := core.NewAuthentication("first")
	second := core.NewAuthentication("second")
	third := core.NewAuthentication("third")

	require.NoError(t, user.AddAuthentication(first))
	require.NoError(t, user.AddAuthentication(second))
	require.NoError(t, user.AddAuthentication(third))

	// act
	events := user.CollectEvents()

	// assert
	changed := singleChangedEvent(t, events)
	require.Len(t, changed.Changes(), 1)
	change, ok := changed.Changes()[0].(core.UserAuthenticationChanged)
	require.True(t, ok)
	assert.Nil(t, change.OldValue())
	assert.Same(t, third, change.NewValue())
}

func Test_User_AccessRights_EmitsNetCollectionChange(t *testing.T) {
	// arrange
	user := createUser(t)
	application := core.NewApplication("CRM")
	first := core.NewAccessRight(user, application, "app-user-1")
	second := core.NewAccessRight(user, application, "app-user-2")

	require.NoError(t, user.AddAccessRight(first))
	require.NoError(t, user.AddAccessRight(second))
	require.NoError(t, user.RemoveAccessRight(first))

	// act
	events := user.CollectEvents()

	// assert
	changed := singleChangedEvent(t, events)
	require.Len(t, changed.Changes(), 1)
	change, ok := changed.Changes()[0].(core.UserAccessRightsChanged)
	require.True(t, ok)
	assert.True(t, change.ContainsAdded(second))
	assert.Len(t, change.AddedItems(), 1)
	assert.Empty(t, change.RemovedItems())
	assert.Equal(t, []*core.AccessRight{second}, user.AccessRights())
}

func Test_User_RemoveAccessRight_NotHeld_RecordsNothing(t *testing.T) {
	// arrange
	user := createUser(t)
	accessRight := core.NewAccessRight(user, core.NewApplication("CRM"), "app-user")

	// act
	err := user.RemoveAccessRight(accessRight)

	// assert
	require.NoError(t, err)
	assert.Empty(t, eventsOfType(user.CollectEvents(), core.UserEntityChangedEventType))
}

func Test_User_ClearEvents_RemovesAllEvents(t *testing.T) {
	// arrange
	user := createUser(t)
	require.NoError(t, user.AddAuthentication(core.NewAuthentication("someone")))
	require.NoError(t, user.AddAccessRight(core.NewAccessRight(user, core.NewApplication("CRM"), "app-user")))

	// act
	user.ClearEvents()
	events := user.CollectEvents()

	// assert
	assert.Empty(t, events)
}

func Test_User_MutuallyExclusiveChanges_EmitNoChangedEvent(t *testing.T) {
	// arrange
	user := createUser(t)
	accessRight := core.NewAccessRight(user, core.NewApplication("CRM"), "app-user")

	require.NoError(t, user.AddAccessRight(accessRight))
	require.NoError(t, user.RemoveAccessRight(accessRight))
	require.NoError(t, user.AddAuthentication(core.NewAuthentication("someone")))
	require.NoError(t, user.RemoveAuthentication())

	// act
	events := user.CollectEvents()

	// assert
	assert.Empty(t, eventsOfType(events, core.UserEntityChangedEventType))
	assert.Len(t, eventsOfType(events, core.UserEntityCreatedEventType), 1)
}

func Test_User_FullLifecycle(t *testing.T) {
	// arrange
	user := createUser(t)
	first := core.NewAuthentication("first")
	second := core.NewAuthentication("second")

	// act & assert: fresh
	events := user.CollectEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.UserEntityCreatedEventType, events[0].IsEventType())

	// act & assert: dirty
	require.NoError(t, user.AddAuthentication(first))
	require.NoError(t, user.AddAuthentication(second))
	events = user.CollectEvents()
	require.Len(t, events, 2)
	assert.Equal(t, core.UserEntityCreatedEventType, events[0].IsEventType())
	changed := singleChangedEvent(t, events)
	change, ok := changed.Changes()[0].(core.UserAuthenticationChanged)
	require.True(t, ok)
	assert.Nil(t, change.OldValue())
	assert.Same(t, second, change.NewValue())

	// act & assert: collected again after reverting the only pending change
	require.NoError(t, user.RemoveAuthentication())
	events = user.CollectEvents()
	require.Len(t, events, 2)
	singleChangedEvent(t, events)

	// act & assert: cleared
	user.ClearEvents()
	assert.Empty(t, user.CollectEvents())
	assert.Nil(t, user.Authentication())
}

func Test_User_CollectEvents_IsIdempotent(t *testing.T) {
	// arrange
	user := createUser(t)
	require.NoError(t, user.AddAuthentication(core.NewAuthentication("someone")))

	// act
	first := user.CollectEvents()
	second := user.CollectEvents()

	// assert
	assert.Equal(t, first, second)
}

func Test_User_ChangedEvent_Describe(t *testing.T) {
	// arrange
	user := createUser(t)
	require.NoError(t, user.AddAuthentication(core.NewAuthentication("jdoe")))

	// act
	changed := singleChangedEvent(t, user.CollectEvents())

	// assert
	assert.Equal(
		t,
		"User: "+user.ObjectID().String()+" changed. Authentication changed from <none> to Authentication [Username: jdoe].",
		changed.Describe(),
	)
}

func Test_ReconstructUser_RecordsNoEvents(t *testing.T) {
	// arrange
	createdUser := createUser(t)
	authentication := core.ReconstructAuthentication(rehydration.Grant(), 7, "jdoe")
	accessRight := core.ReconstructAccessRight(
		rehydration.Grant(),
		11,
		nil,
		core.ReconstructApplication(rehydration.Grant(), 3, "CRM"),
		"app-user",
	)

	// act
	user := core.ReconstructUser(rehydration.Grant(), core.UserState{
		ID:             42,
		ObjectID:       createdUser.ObjectID(),
		Authentication: authentication,
		AccessRights:   []*core.AccessRight{accessRight},
	})

	// assert
	assert.Empty(t, user.CollectEvents())
	assert.Equal(t, int64(42), user.ID())
	assert.Equal(t, int64(7), user.AuthenticationID())
	assert.Same(t, user, user.AccessRights()[0].User())
}
