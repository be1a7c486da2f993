package lib

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateRandomHex returns n cryptographically secure random bytes, hex encoded.
func GenerateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
