// Package credentials isolates secret verification so the plaintext demo
// check can be swapped for a hashed scheme without touching callers.
package credentials

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rbacdash/internal/common"
	"github.com/dmitrijs2005/rbacdash/internal/cryptox"
	"github.com/dmitrijs2005/rbacdash/internal/models"
)

// Verifier decides whether secret unlocks user. Protect turns a secret
// into the form Verify expects to find stored.
type Verifier interface {
	Verify(user models.User, secret string) bool
	Protect(secret string) string
}

// Kinds accepted by New.
const (
	KindPlain  = "plain"
	KindArgon2 = "argon2"
)

var ErrUnknownVerifier = errors.New("unknown verifier")

// New returns the verifier named by kind.
func New(kind string) (Verifier, error) {
	switch strings.ToLower(kind) {
	case "", KindPlain:
		return Plain{}, nil
	case KindArgon2:
		return Argon2{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVerifier, kind)
}

// Plain is an exact, case-sensitive comparison with the stored secret.
type Plain struct{}

func (Plain) Verify(user models.User, secret string) bool {
	return user.Password == secret
}

// Protect stores the secret as given.
func (Plain) Protect(secret string) string {
	return secret
}

const argonPrefix = "argon2id$"

// Hash encodes secret as "argon2id$<salt>$<verifier>" with a random salt.
func Hash(secret string) string {
	salt := common.GenerateRandByteArray(cryptox.SaltLen)
	key := cryptox.DeriveMasterKey([]byte(secret), salt)
	defer common.WipeByteArray(key)

	enc := base64.RawStdEncoding
	return argonPrefix + enc.EncodeToString(salt) + "$" + enc.EncodeToString(cryptox.MakeVerifier(key))
}

// IsHashed reports whether stored looks like a Hash result.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, argonPrefix)
}

// Argon2 checks secrets against Hash encodings. Records that still hold a
// plaintext secret (the seeded demo accounts) fall back to Plain.
type Argon2 struct{}

// Protect hashes secret. Values that are already hashed are kept.
func (Argon2) Protect(secret string) string {
	if IsHashed(secret) {
		return secret
	}
	return Hash(secret)
}

func (Argon2) Verify(user models.User, secret string) bool {
	if !IsHashed(user.Password) {
		return Plain{}.Verify(user, secret)
	}

	parts := strings.Split(strings.TrimPrefix(user.Password, argonPrefix), "$")
	if len(parts) != 2 {
		return false
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[0])
	if err != nil {
		return false
	}
	stored, err := enc.DecodeString(parts[1])
	if err != nil {
		return false
	}

	key := cryptox.DeriveMasterKey([]byte(secret), salt)
	defer common.WipeByteArray(key)

	return cryptox.CheckVerifier(stored, cryptox.MakeVerifier(key))
}
