package core

import (
	"fmt"

	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

// AccessRight grants a user access to an application under an application specific user ID.
type AccessRight struct {
	id                int64
	applicationUserID string
	user              *User
	application       *Application
}

// NewAccessRight creates a transient AccessRight.
func NewAccessRight(user *User, application *Application, applicationUserID string) *AccessRight {
	return &AccessRight{
		applicationUserID: applicationUserID,
		user:              user,
		application:       application,
	}
}

// ReconstructAccessRight rebuilds a persisted AccessRight.
func ReconstructAccessRight(
	_ rehydration.Token,
	id int64,
	user *User,
	application *Application,
	applicationUserID string,
) *AccessRight {

	return &AccessRight{
		id:                id,
		applicationUserID: applicationUserID,
		user:              user,
		application:       application,
	}
}

func (r *AccessRight) ID() int64 {
	return r.id
}

func (r *AccessRight) ApplicationUserID() string {
	return r.applicationUserID
}

func (r *AccessRight) User() *User {
	return r.user
}

func (r *AccessRight) Application() *Application {
	return r.application
}

// AssignID is called by persistence once the access right was stored.
func (r *AccessRight) AssignID(_ rehydration.Token, id int64) {
	r.id = id
}

func (r *AccessRight) String() string {
	return fmt.Sprintf("Access Right: [%s, %s, Application User ID: %s]", r.application, r.user, r.applicationUserID)
}
