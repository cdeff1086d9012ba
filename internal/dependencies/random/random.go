package random

import (
	"crypto/rand"
	"encoding/hex"
)

// Random provides random token generation that can be mocked for testing
type Random interface {
	// Hex returns a lowercase hex string encoding numBytes random bytes,
	// so the result is 2*numBytes characters long
	Hex(numBytes int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Hex returns a cryptographically random lowercase hex string
func (r *CryptoRandom) Hex(numBytes int) string {
	if numBytes <= 0 {
		return ""
	}
	b := make([]byte, numBytes)
	// crypto/rand.Read only fails when the OS entropy source is broken
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
