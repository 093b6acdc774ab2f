package shell

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
)

// UserView is the read model of a user returned by the feature handlers.
type UserView struct {
	UserObjectID   uuid.UUID           `json:"userObjectId"`
	Authentication *AuthenticationView `json:"authentication,omitempty"`
	AccessRights   []AccessRightView   `json:"accessRights"`
	DomainEvents   []string            `json:"domainEvents,omitempty"`
}

// AuthenticationView is the read model of an authentication.
type AuthenticationView struct {
	Username     string    `json:"username"`
	UserObjectID uuid.UUID `json:"userObjectId"`
}

// AccessRightView is the read model of an access right.
type AccessRightView struct {
	UserObjectID      uuid.UUID `json:"userObjectId"`
	ApplicationCode   string    `json:"applicationCode"`
	ApplicationUserID string    `json:"applicationUserId"`
}

// BuildUserView maps a user and optional domain event descriptions to a UserView.
func BuildUserView(user *core.User, domainEventDescriptions ...string) UserView {
	view := UserView{
		UserObjectID: user.ObjectID(),
		AccessRights: make([]AccessRightView, 0),
		DomainEvents: domainEventDescriptions,
	}

	if authentication := user.Authentication(); authentication != nil {
		view.Authentication = &AuthenticationView{
			Username:     authentication.Username(),
			UserObjectID: user.ObjectID(),
		}
	}

	for _, accessRight := range user.AccessRights() {
		accessRightView := AccessRightView{
			UserObjectID:      user.ObjectID(),
			ApplicationUserID: accessRight.ApplicationUserID(),
		}

		if application := accessRight.Application(); application != nil {
			accessRightView.ApplicationCode = application.Code()
		}

		view.AccessRights = append(view.AccessRights, accessRightView)
	}

	return view
}
