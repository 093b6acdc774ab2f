// Package core contains the user administration domain: users, their authentication and the
// access rights they hold for applications.
//
// The User aggregate tracks its changes and emits a UserEntityCreated event when it is created
// and a single UserEntityChanged event summarizing everything that changed since the events
// were last cleared.
package core
