package getusers

import (
	"context"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

// UserRepository defines the interface needed by the QueryHandler to load users.
type UserRepository interface {
	List(ctx context.Context) ([]*core.User, error)
}

// QueryHandler lists users.
type QueryHandler struct {
	users UserRepository
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(users UserRepository) QueryHandler {
	return QueryHandler{users: users}
}

// Handle loads all users and maps them to views.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Users, error) {
	users, err := h.users.List(ctx)
	if err != nil {
		return Users{}, err
	}

	result := Users{Users: make([]shell.UserView, 0, len(users))}
	for _, user := range users {
		result.Users = append(result.Users, shell.BuildUserView(user))
	}

	return result, nil
}
