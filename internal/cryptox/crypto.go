// Package cryptox derives password verifiers so credentials are never kept
// or compared in plain text.
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
	keyLen       = 32
)

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// MakeVerifier hashes a derived key into the value that is stored and compared.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// Verify derives a verifier from (password, salt) and compares it with want
// in constant time.
func Verify(password, salt, want []byte) bool {
	got := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(got, want) == 1
}
