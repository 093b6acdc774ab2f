package core

import (
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

// Application is a system a user can be granted access to.
type Application struct {
	id   int64
	code string
}

// NewApplication creates a transient Application.
func NewApplication(code string) *Application {
	return &Application{code: code}
}

// ReconstructApplication rebuilds a persisted Application.
func ReconstructApplication(_ rehydration.Token, id int64, code string) *Application {
	return &Application{id: id, code: code}
}

func (a *Application) ID() int64 {
	return a.id
}

func (a *Application) Code() string {
	return a.code
}

// AssignID is called by persistence once the application was stored.
func (a *Application) AssignID(_ rehydration.Token, id int64) {
	a.id = id
}

func (a *Application) String() string {
	return "Application: " + a.code
}
