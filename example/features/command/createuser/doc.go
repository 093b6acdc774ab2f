// Package createuser implements the "Create User" use case.
//
// The CommandHandler creates a user inside a transaction boundary and adds it through the
// repository. The UserEntityCreated event is dispatched to its subscribers before the
// transaction commits; the returned view carries its description.
package createuser
