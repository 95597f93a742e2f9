// Package passwords hashes and verifies account passwords with bcrypt.
//
// bcrypt reads at most 72 bytes of input, so every password is first reduced
// to the base64 encoding of its SHA-256 digest. Passwords of any length are
// accepted and every byte of them counts.
package passwords

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the work factor used when a caller passes zero.
const DefaultCost = bcrypt.DefaultCost

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Hash returns the bcrypt hash of password at the given cost.
func Hash(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	return bcrypt.GenerateFromPassword(prehash(password), cost)
}

// Compare returns nil when password matches hash.
func Compare(hash []byte, password string) error {
	return bcrypt.CompareHashAndPassword(hash, prehash(password))
}
