// Package crypto wraps password credential hashing.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes the provided password using bcrypt. The adaptive work
// factor is the point: callers should not run this on a latency-sensitive
// path.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword compares the stored hash with the provided password.
// bcrypt's comparison is constant-time with respect to the hash.
func ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
