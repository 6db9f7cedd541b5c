// Package keys generates opaque API key tokens.
package keys

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes gives 128 bits of entropy, encoded as 32 hex characters.
const tokenBytes = 16

// Generate returns a new cryptographically random API key.
func Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
