package updateuser

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

// UserRepository defines the interface needed by the CommandHandler to load and store users.
type UserRepository interface {
	GetByObjectID(ctx context.Context, objectID uuid.UUID) (*core.User, error)
	Save(ctx context.Context, user *core.User) error
}

// ApplicationRepository provides the application a new access right is granted for.
type ApplicationRepository interface {
	GetRandom(ctx context.Context) (*core.Application, error)
}

// TransactionBoundary runs work inside a transaction and dispatches the events of tracked entities.
type TransactionBoundary interface {
	Run(ctx context.Context, work shell.Work) error
}

// CommandHandler changes users.
type CommandHandler struct {
	boundary      TransactionBoundary
	users         UserRepository
	applications  ApplicationRepository
	randomStrings core.RandomStringGenerator
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(
	boundary TransactionBoundary,
	users UserRepository,
	applications ApplicationRepository,
	randomStrings core.RandomStringGenerator,
) CommandHandler {

	return CommandHandler{
		boundary:      boundary,
		users:         users,
		applications:  applications,
		randomStrings: randomStrings,
	}
}

// Handle changes the user and returns its view together with the description of the change event.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.UserView, error) {
	var view shell.UserView

	err := h.boundary.Run(ctx, func(ctx context.Context, unitOfWork *shell.UnitOfWork) error {
		user, err := h.users.GetByObjectID(ctx, command.UserObjectID)
		if err != nil {
			return err
		}

		unitOfWork.Track(user)

		if err = h.replaceAccessRight(ctx, user); err != nil {
			return err
		}

		if err = h.replaceAuthentication(user); err != nil {
			return err
		}

		descriptions := make([]string, 0, 1)
		for _, event := range user.CollectEvents() {
			if event.IsEventType() == core.UserEntityChangedEventType {
				descriptions = append(descriptions, event.Describe())
			}
		}

		if err = h.users.Save(ctx, user); err != nil {
			return err
		}

		view = shell.BuildUserView(user, descriptions...)

		return nil
	})
	if err != nil {
		return shell.UserView{}, err
	}

	return view, nil
}

func (h CommandHandler) replaceAccessRight(ctx context.Context, user *core.User) error {
	if accessRights := user.AccessRights(); len(accessRights) > 0 {
		if err := user.RemoveAccessRight(accessRights[0]); err != nil {
			return err
		}
	}

	application, err := h.applications.GetRandom(ctx)
	if err != nil {
		return err
	}

	applicationUserID, err := h.randomStrings.Generate(core.DefaultRandomStringLength)
	if err != nil {
		return err
	}

	return user.AddAccessRight(core.NewAccessRight(user, application, applicationUserID))
}

func (h CommandHandler) replaceAuthentication(user *core.User) error {
	if user.Authentication() != nil {
		if err := user.RemoveAuthentication(); err != nil {
			return err
		}
	}

	username, err := h.randomStrings.Generate(core.DefaultRandomStringLength)
	if err != nil {
		return err
	}

	return user.AddAuthentication(core.NewAuthentication(username))
}
