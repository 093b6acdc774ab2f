package core

import (
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

// Authentication holds the credentials a user signs in with.
type Authentication struct {
	id       int64
	username string
}

// NewAuthentication creates a transient Authentication.
func NewAuthentication(username string) *Authentication {
	return &Authentication{username: username}
}

// ReconstructAuthentication rebuilds a persisted Authentication.
func ReconstructAuthentication(_ rehydration.Token, id int64, username string) *Authentication {
	return &Authentication{id: id, username: username}
}

// ID returns the persistent identity, 0 while the authentication is transient.
func (a *Authentication) ID() int64 {
	return a.id
}

func (a *Authentication) Username() string {
	return a.username
}

func (a *Authentication) SetUsername(username string) {
	a.username = username
}

// AssignID is called by persistence once the authentication was stored.
func (a *Authentication) AssignID(_ rehydration.Token, id int64) {
	a.id = id
}

func (a *Authentication) String() string {
	return "Authentication [Username: " + a.username + "]"
}
