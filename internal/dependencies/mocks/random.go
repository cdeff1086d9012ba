package mocks

import (
	"fmt"

	"github.com/pelletion/battlereq/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// HexResults is a queue of results to return from Hex
	HexResults []string
	hexIndex   int

	// counter backs the fallback values once the queue is drained
	counter int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Hex returns the next queued result. Once the queue is drained it falls
// back to deterministic unique values, since callers rely on token
// uniqueness even in tests that don't care about the exact value.
func (r *MockRandom) Hex(numBytes int) string {
	if r.hexIndex < len(r.HexResults) {
		result := r.HexResults[r.hexIndex]
		r.hexIndex++
		return result
	}
	r.counter++
	return fmt.Sprintf("%0*x", 2*numBytes, r.counter)
}

// QueueHex adds values to the Hex result queue
func (r *MockRandom) QueueHex(values ...string) {
	r.HexResults = append(r.HexResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.HexResults = nil
	r.hexIndex = 0
	r.counter = 0
}
