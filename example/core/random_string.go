package core

import (
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultRandomStringLength is the length used for generated usernames and application user IDs.
const DefaultRandomStringLength = 6

const alphanumericCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomStringGenerator produces random strings of a given length.
type RandomStringGenerator interface {
	Generate(length int) (string, error)
}

// AlphanumericGenerator generates random strings from ASCII letters and digits.
type AlphanumericGenerator struct{}

// NewAlphanumericGenerator creates an AlphanumericGenerator.
func NewAlphanumericGenerator() AlphanumericGenerator {
	return AlphanumericGenerator{}
}

// Generate returns a random alphanumeric string with the given length.
func (g AlphanumericGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidRandomStringLength
	}

	generated, err := gonanoid.Generate(alphanumericCharacters, length)
	if err != nil {
		return "", errors.Join(ErrGeneratingRandomStringFailed, err)
	}

	return generated, nil
}
