// Package cryptox wraps password hashing for stored account credentials.
package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by ComparePassword when the password does not match.
var ErrMismatch = errors.New("password mismatch")

// prehash folds plain into a fixed 44-byte string so bcrypt's 72-byte input
// limit never applies and no byte of a long password is ignored.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword returns a salted bcrypt hash of the SHA-256 digest of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks plain against a hash produced by HashPassword.
// A wrong password yields ErrMismatch; a malformed hash yields the bcrypt error.
func ComparePassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
