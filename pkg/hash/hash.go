package hash

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest returns the fixed password digest stored in the users table.
// The scheme is deliberately unsalted: login compares digests byte for byte.
func Digest(password string) string {
	sum := sha3.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(Digest(password))) == 1
}
