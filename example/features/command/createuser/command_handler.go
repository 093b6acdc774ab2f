package createuser

import (
	"context"
	"time"

	"github.com/AntonStoeckl/entity-change-events-go/domainevents"
	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

// UserRepository defines the interface needed by the CommandHandler to store users.
type UserRepository interface {
	Add(ctx context.Context, user *core.User) error
}

// TransactionBoundary runs work inside a transaction and dispatches the events of tracked entities.
type TransactionBoundary interface {
	Run(ctx context.Context, work shell.Work) error
}

// CommandHandler creates users.
type CommandHandler struct {
	boundary TransactionBoundary
	users    UserRepository
	clock    func() time.Time
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(boundary TransactionBoundary, users UserRepository) CommandHandler {
	return CommandHandler{boundary: boundary, users: users, clock: time.Now}
}

// Handle creates a user, stores it and returns its view together with the creation event description.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (shell.UserView, error) {
	var view shell.UserView

	err := h.boundary.Run(ctx, func(ctx context.Context, unitOfWork *shell.UnitOfWork) error {
		user, err := core.CreateUser(h.clock())
		if err != nil {
			return err
		}

		unitOfWork.Track(user)

		if err = h.users.Add(ctx, user); err != nil {
			return err
		}

		view = shell.BuildUserView(user, descriptionsOf(user.CollectEvents(), core.UserEntityCreatedEventType)...)

		return nil
	})
	if err != nil {
		return shell.UserView{}, err
	}

	return view, nil
}

func descriptionsOf(events domainevents.DomainEvents, eventType string) []string {
	descriptions := make([]string, 0, 1)
	for _, event := range events {
		if event.IsEventType() == eventType {
			descriptions = append(descriptions, event.Describe())
		}
	}

	return descriptions
}
