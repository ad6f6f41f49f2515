package id

import (
	"encoding/hex"
	"testing"
)

func TestHexGenerator_NewID(t *testing.T) {
	g := NewHexGenerator(0)

	first, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(first) != 24 {
		t.Fatalf("expected 24 hex chars, got %d (%s)", len(first), first)
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Fatalf("expected hex id, got %q: %v", first, err)
	}

	second, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
}
