// Package hash provides the content hashing used for transactions and blocks.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ZeroHash represents the previous hash of the genesis block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// Hash returns the lowercase hex encoded sha256 digest of the parts
// concatenated in order.
func Hash(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Join builds the dash separated preimage used for ledger hashes.
func Join(parts ...string) string {
	return strings.Join(parts, "-")
}

// IsHash reports whether the string looks like a value produced by Hash.
func IsHash(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}

	for _, c := range []byte(s) {
		if !(('0' <= c && c <= '9') || ('a' <= c && c <= 'f')) {
			return false
		}
	}

	return true
}
