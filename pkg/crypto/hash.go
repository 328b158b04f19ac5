// Package crypto provides the signing and hashing primitives of the wallet.
package crypto

import (
	"crypto/sha256"
	"encoding/base64"
)

// Hash computes the SHA-256 digest of data.
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HashString renders a digest the way the Helium API prints transaction
// hashes: URL-safe base64 without padding.
func HashString(h [32]byte) string {
	return base64.RawURLEncoding.EncodeToString(h[:])
}
