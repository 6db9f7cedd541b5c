package keys

import (
	"encoding/hex"
	"testing"
)

func TestGenerate_LengthAndEncoding(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(k) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(k))
	}
	if _, err := hex.DecodeString(k); err != nil {
		t.Fatalf("key is not hex: %v", err)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		k, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[k] {
			t.Fatalf("duplicate key generated: %s", k)
		}
		seen[k] = true
	}
}
