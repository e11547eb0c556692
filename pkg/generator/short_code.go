package generator

import (
	"crypto/rand"
	"math/big"
)

const (
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength gives 62^6 (~57 billion) possible codes.
	DefaultLength = 6
)

// Generate returns a random base62 string of the given length.
// Uniqueness is not guaranteed here; callers enforce it against
// the store and retry on collision.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}

		b[i] = base62Chars[n.Int64()]
	}

	return string(b), nil
}
