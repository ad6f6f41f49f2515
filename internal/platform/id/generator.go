package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque identifiers for stored records.
type Generator interface {
	NewID() (string, error)
}

// HexGenerator returns random lowercase hex identifiers. The default size of
// 12 bytes gives 24-character ids, the same shape as Mongo object ids.
type HexGenerator struct {
	size int
}

func NewHexGenerator(size int) *HexGenerator {
	if size <= 0 {
		size = 12
	}
	return &HexGenerator{size: size}
}

func (g *HexGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
