// Package share implements link-based sharing: unguessable bearer tokens that
// grant scoped, time-limited, revocable access to one organization's calendar
// data, consumed by anonymous callers with no account.
package share

import (
	"crypto/rand"
	"encoding/hex"
)

// 32 random bytes, double the 128-bit floor for unguessable tokens.
const tokenBytes = 32

// NewToken returns a hex-encoded cryptographically random bearer token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
