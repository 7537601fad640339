// Package cryptox implements salted password hashing for stored credentials.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates stored hashes.
const (
	SaltLength = 16
	KeyLength  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltLength)
}

// HashPassword derives the stored hash for password with salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeyLength)
}

// VerifyPassword reports whether password hashes to hash under salt.
// The comparison runs in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(hash, candidate) == 1
}
