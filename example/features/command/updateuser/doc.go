// Package updateuser implements the "Update User" use case.
//
// The CommandHandler changes a user several times in one unit of work: the first access right is
// replaced by one for a random application, and the authentication is replaced by one with a
// random username. All changes are folded into a single UserEntityChanged event. Its description
// is rendered before the user is saved, while every access right still references its user and
// application.
package updateuser
