package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecretKey returns a random 32-byte key encoded as unpadded URL-safe base64,
// suitable for the crypto.secret_key setting.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
