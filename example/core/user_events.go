package core

import (
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/changetracking"
	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
)

// UserEntityCreatedEventType is the event type identifier.
const UserEntityCreatedEventType = "UserEntityCreated"

// UserEntityChangedEventType is the event type identifier.
const UserEntityChangedEventType = "UserEntityChanged"

// Member names of User as they appear in change descriptions.
const (
	AuthenticationMemberName = "Authentication"
	AccessRightsMemberName   = "AccessRights"
)

// UserEntityCreated represents the creation of a user.
type UserEntityCreated = domainevents.EntityCreated[*User]

// UserEntityChanged represents the changes applied to a user since its events were last cleared.
type UserEntityChanged = domainevents.EntityChanged[*User]

// UserAuthenticationChanged describes a change of the user's authentication.
type UserAuthenticationChanged = changetracking.PropertyChange[*Authentication]

// UserAccessRightsChanged describes access rights granted to or revoked from a user.
type UserAccessRightsChanged = changetracking.CollectionChange[*AccessRight]

// BuildUserEntityCreated creates a new UserEntityCreated event.
func BuildUserEntityCreated(user *User, occurredAt time.Time) UserEntityCreated {
	return domainevents.BuildEntityCreated(UserEntityCreatedEventType, user, occurredAt)
}

// BuildUserEntityChanged creates a new UserEntityChanged event.
func BuildUserEntityChanged(user *User, changes []changetracking.MemberChange, occurredAt time.Time) UserEntityChanged {
	return domainevents.BuildEntityChanged(UserEntityChangedEventType, user, changes, occurredAt)
}

// NewUserAuthenticationChanged creates a UserAuthenticationChanged; either value may be nil.
func NewUserAuthenticationChanged(oldValue, newValue *Authentication) UserAuthenticationChanged {
	return changetracking.NewPropertyChange(AuthenticationMemberName, oldValue, newValue, AuthenticationComparer())
}

// NewUserAccessRightsChanged creates a UserAccessRightsChanged.
func NewUserAccessRightsChanged(added, removed []*AccessRight) UserAccessRightsChanged {
	return changetracking.NewCollectionChange(AccessRightsMemberName, added, removed, AccessRightComparer())
}
