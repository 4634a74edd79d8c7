package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnvOrDefault returns the ENV value or a fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateReferenceCode returns an n-character A-Z0-9 code, using
// crypto/rand with math/big to avoid modulo bias.
func GenerateReferenceCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateBookingReference builds a booking reference like "BK-7F3K9Q2D".
func GenerateBookingReference() (string, error) {
	code, err := GenerateReferenceCode(8)
	if err != nil {
		return "", err
	}
	return "BK-" + code, nil
}
