package changetracking

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Comparer defines equality and hashing for the values a change describes.
//
// Values that are Equal must produce the same Hash.
type Comparer[T any] interface {
	Equal(x, y T) bool
	Hash(v T) uint64
}

var defaultSeed = maphash.MakeSeed()

type naturalComparer[T comparable] struct{}

// DefaultComparer returns a Comparer based on the == operator.
func DefaultComparer[T comparable]() Comparer[T] {
	return naturalComparer[T]{}
}

func (naturalComparer[T]) Equal(x, y T) bool {
	return x == y
}

func (naturalComparer[T]) Hash(v T) uint64 {
	return maphash.Comparable(defaultSeed, v)
}

type funcComparer[T any] struct {
	equal func(x, y T) bool
	key   func(v T) string
}

// ComparerFunc builds a Comparer from an equality function and a key function.
//
// The key is used for hashing only, so every pair of values that equal reports as
// equal must map to the same key. A nil equal compares the keys.
func ComparerFunc[T any](equal func(x, y T) bool, key func(v T) string) Comparer[T] {
	if equal == nil {
		equal = func(x, y T) bool { return key(x) == key(y) }
	}

	return funcComparer[T]{equal: equal, key: key}
}

func (c funcComparer[T]) Equal(x, y T) bool {
	return c.equal(x, y)
}

func (c funcComparer[T]) Hash(v T) uint64 {
	return xxhash.Sum64String(c.key(v))
}
