package core

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/entity-change-events-go/changetracking"
	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

// User is the aggregate root of the user administration domain.
//
// Every mutation is recorded as a member change before it is applied. The pending changes are
// folded into one UserEntityChanged event when the events are collected.
type User struct {
	id             int64
	objectID       uuid.UUID
	authentication *Authentication
	accessRights   []*AccessRight

	tracker *changetracking.Tracker
	events  *domainevents.EventLog
}

// UserState is the persisted state a User is rebuilt from.
type UserState struct {
	ID             int64
	ObjectID       uuid.UUID
	Authentication *Authentication
	AccessRights   []*AccessRight
}

// CreateUser creates a new User with a fresh object ID and records a UserEntityCreated event.
func CreateUser(now time.Time) (*User, error) {
	objectID, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Join(ErrCreatingUserFailed, err)
	}

	user := newUser(objectID)
	user.events.AppendOnce(BuildUserEntityCreated(user, now))

	return user, nil
}

// ReconstructUser rebuilds a User from persisted state without recording any event.
//
// Access rights in state that belong to no user are attached to the rebuilt one.
func ReconstructUser(_ rehydration.Token, state UserState) *User {
	user := newUser(state.ObjectID)
	user.id = state.ID
	user.authentication = state.Authentication

	for _, accessRight := range state.AccessRights {
		if accessRight.user == nil {
			accessRight.user = user
		}
		user.accessRights = append(user.accessRights, accessRight)
	}

	return user
}

func newUser(objectID uuid.UUID) *User {
	return &User{
		objectID: objectID,
		tracker:  changetracking.NewTracker(),
		events:   domainevents.NewEventLog(),
	}
}

// ID returns the persistent identity, 0 while the user is transient.
func (u *User) ID() int64 {
	return u.id
}

func (u *User) ObjectID() uuid.UUID {
	return u.objectID
}

// Authentication returns the current authentication or nil.
func (u *User) Authentication() *Authentication {
	return u.authentication
}

// AuthenticationID returns the ID of the current authentication, 0 if there is none.
func (u *User) AuthenticationID() int64 {
	if u.authentication == nil {
		return 0
	}

	return u.authentication.id
}

// AccessRights returns a copy of the current access rights.
func (u *User) AccessRights() []*AccessRight {
	return slices.Clone(u.accessRights)
}

// AssignID is called by persistence once the user was stored.
func (u *User) AssignID(_ rehydration.Token, id int64) {
	u.id = id
}

// AddAuthentication replaces the current authentication.
func (u *User) AddAuthentication(authentication *Authentication) error {
	if err := u.tracker.Add(NewUserAuthenticationChanged(u.authentication, authentication)); err != nil {
		return err
	}

	u.authentication = authentication

	return nil
}

// RemoveAuthentication removes the current authentication.
func (u *User) RemoveAuthentication() error {
	if err := u.tracker.Add(NewUserAuthenticationChanged(u.authentication, nil)); err != nil {
		return err
	}

	u.authentication = nil

	return nil
}

// AddAccessRight grants an access right.
func (u *User) AddAccessRight(accessRight *AccessRight) error {
	if err := u.tracker.Add(NewUserAccessRightsChanged([]*AccessRight{accessRight}, nil)); err != nil {
		return err
	}

	u.accessRights = append(u.accessRights, accessRight)

	return nil
}

// RemoveAccessRight revokes an access right. Nothing is recorded if the user does not hold it.
func (u *User) RemoveAccessRight(accessRight *AccessRight) error {
	index := slices.IndexFunc(u.accessRights, func(held *AccessRight) bool {
		return AccessRightComparer().Equal(held, accessRight)
	})

	if index < 0 {
		return nil
	}

	if err := u.tracker.Add(NewUserAccessRightsChanged(nil, []*AccessRight{accessRight})); err != nil {
		return err
	}

	u.accessRights = slices.Delete(u.accessRights, index, index+1)

	return nil
}

// CollectEvents returns the pending events. Pending changes are folded into a
// UserEntityChanged event, which is recorded at most once until the events are cleared.
func (u *User) CollectEvents() domainevents.DomainEvents {
	if u.tracker.HasChanges() {
		u.events.AppendOnce(BuildUserEntityChanged(u, u.tracker.Changes(), time.Now()))
	}

	return u.events.Collect()
}

// ClearEvents drops the pending events and changes.
func (u *User) ClearEvents() {
	u.tracker.Clear()
	u.events.Clear()
}

func (u *User) String() string {
	return "User: " + u.objectID.String()
}
