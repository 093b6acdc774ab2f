package core

import "errors"

// ErrCreatingUserFailed is returned when a new user cannot be created.
var ErrCreatingUserFailed = errors.New("creating user failed")

// ErrInvalidRandomStringLength is returned when a random string of length <= 0 is requested.
var ErrInvalidRandomStringLength = errors.New("random string length must be greater than 0")

// ErrGeneratingRandomStringFailed is returned when the random source fails.
var ErrGeneratingRandomStringFailed = errors.New("generating random string failed")
