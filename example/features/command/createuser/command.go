package createuser

const commandType = "CreateUser"

// Command represents the intent to create a new user. It carries no data.
type Command struct{}

// CommandType returns the type of this command for observability and routing purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand() Command {
	return Command{}
}
