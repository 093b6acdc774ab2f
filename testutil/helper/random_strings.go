package helper

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// SequenceRandomStringGenerator returns the prefix followed by a counter. The requested length is ignored.
type SequenceRandomStringGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter int
}

// NewSequenceRandomStringGenerator creates a SequenceRandomStringGenerator.
func NewSequenceRandomStringGenerator(prefix string) *SequenceRandomStringGenerator {
	return &SequenceRandomStringGenerator{prefix: prefix}
}

// Generate implements core.RandomStringGenerator.
func (g *SequenceRandomStringGenerator) Generate(_ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return fmt.Sprintf("%s%d", g.prefix, g.counter), nil
}

// GivenUniqueID returns a fresh UUIDv7.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}
