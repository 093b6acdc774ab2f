package updateuser

import (
	"github.com/google/uuid"
)

const commandType = "UpdateUser"

// Command represents the intent to change a user.
type Command struct {
	UserObjectID uuid.UUID
}

// CommandType returns the type of this command for observability and routing purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(userObjectID uuid.UUID) Command {
	return Command{UserObjectID: userObjectID}
}
