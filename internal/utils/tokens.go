package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken returns nBytes of crypto/rand as hex; 32 bytes when nBytes <= 0.
func NewToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
