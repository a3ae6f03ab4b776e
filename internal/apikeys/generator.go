package apikeys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const defaultKeyBytes = 32

// Generator produces API key material. Hosts can inject their own
// key-management collaborator; the default draws from crypto/rand.
type Generator interface {
	Generate() (string, error)
}

// NewRandomGenerator returns the default crypto/rand backed generator.
func NewRandomGenerator() Generator {
	return NewRandomGeneratorWithSize(defaultKeyBytes)
}

// NewRandomGeneratorWithSize returns a generator producing size random bytes
// of key material, hex encoded. Sizes below 16 bytes fall back to the default.
func NewRandomGeneratorWithSize(size int) Generator {
	if size < 16 {
		size = defaultKeyBytes
	}
	return randomGenerator{size: size}
}

type randomGenerator struct {
	size int
}

func (g randomGenerator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("apikeys: generate key material: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GeneratorFunc adapts a function to the Generator interface (tests mostly).
type GeneratorFunc func() (string, error)

func (f GeneratorFunc) Generate() (string, error) {
	return f()
}
