// Package credential hashes and verifies account passwords. Digests are
// bcrypt, so every hash carries its own salt and work factor.
package credential

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword indicates an attempt to hash a blank password.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash derives a one-way digest of the password.
func Hash(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Verify reports whether the password matches the stored digest.
func Verify(password string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(password)) == nil
}
