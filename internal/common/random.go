package common

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// MakeRandURLSafeString returns size random bytes encoded with unpadded
// URL-safe base64. With size=32 the result carries 256 bits of entropy and is
// 43 characters long.
func MakeRandURLSafeString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// MakeNumericCode returns a uniformly random decimal code with exactly digits
// characters. Leading zeros are kept.
func MakeNumericCode(digits int) (string, error) {
	if digits <= 0 {
		return "", fmt.Errorf("invalid code length %d", digits)
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}
