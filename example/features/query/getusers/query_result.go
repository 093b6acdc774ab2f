package getusers

import (
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
)

// Users is the result of the Query.
type Users struct {
	Users []shell.UserView `json:"users"`
}
