package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// MinSecretLength is the minimum HMAC secret length accepted outside development.
const MinSecretLength = 32

// GenerateSecret returns a random hex-encoded signing secret of n bytes.
// Used when no JWT_SECRET is configured in development; tokens signed with it
// stop verifying when the process restarts.
func GenerateSecret(n int) (string, error) {
	if n < MinSecretLength {
		n = MinSecretLength
	}
	b, err := randomBytes(n)
	if err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
