package postgres

import "errors"

var (
	// ErrEmptyTableName is returned when a table name option is empty.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrBuildingQueryFailed is returned when goqu cannot render a statement.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when the database rejects a statement.
	ErrQueryingFailed = errors.New("querying database failed")

	// ErrScanningRowFailed is returned when a result row does not match the expected columns.
	ErrScanningRowFailed = errors.New("scanning row failed")

	// ErrUserNotFound is returned when no user with the requested object ID exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNotPersisted is returned when a transient user is saved instead of added.
	ErrUserNotPersisted = errors.New("user was not added before")

	// ErrNoApplicationFound is returned when no application exists.
	ErrNoApplicationFound = errors.New("no application found")

	// ErrNoIDReturned is returned when an insert did not return the generated ID.
	ErrNoIDReturned = errors.New("insert returned no id")
)
