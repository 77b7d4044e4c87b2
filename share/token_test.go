package share

import (
	"encoding/hex"
	"testing"
)

func TestNewToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(token) != tokenBytes*2 {
			t.Fatalf("token length = %d, want %d", len(token), tokenBytes*2)
		}
		if _, err := hex.DecodeString(token); err != nil {
			t.Fatalf("token not hex: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
