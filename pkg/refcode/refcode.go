// Package refcode generates human-readable booking reference codes.
package refcode

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator produces prefixed random base36 codes, e.g. "KMP-AX829".
type Generator struct {
	prefix string
	length int
}

// NewGenerator creates a generator with the given prefix and random-part
// length. Length below 5 is raised to 5 to keep collisions unlikely.
func NewGenerator(prefix string, length int) *Generator {
	if length < 5 {
		length = 5
	}
	return &Generator{prefix: prefix, length: length}
}

// Generate returns a new reference code. Uniqueness is enforced by the
// storage layer (unique index); the random space makes collisions rare
// enough that inserts are simply retried.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("refcode: read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return g.prefix + "-" + string(buf), nil
}
