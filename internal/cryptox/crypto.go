// Package cryptox holds the key-derivation primitives used to verify
// hashed credentials.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them invalidates every stored verifier.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	KeyLen       = 32
	SaltLen      = 16
)

// DeriveMasterKey stretches a secret with Argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeyLen)
}

// MakeVerifier returns the value that is stored instead of the secret.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// CheckVerifier reports whether candidate equals the stored verifier,
// in constant time.
func CheckVerifier(stored, candidate []byte) bool {
	return subtle.ConstantTimeCompare(stored, candidate) == 1
}
