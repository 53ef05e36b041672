package util

import (
	"crypto/rand"
	"math/big"
	"path/filepath"
	"strings"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomString returns n characters from [a-z0-9].
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomAlphabet[0]
			continue
		}
		b[i] = randomAlphabet[idx.Int64()]
	}
	return string(b)
}

// FileExt returns the extension of name without the leading dot.
func FileExt(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}
