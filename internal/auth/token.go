package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Session token format: whv_<64 hex chars>.
// The plaintext token is handed to the client once at sign-in; the
// server stores only its QuickHash as the Redis lookup key.
const tokenSecretLen = 32 // 32 random bytes, 64 hex chars

var (
	// ErrInvalidTokenFormat indicates the token format is invalid.
	ErrInvalidTokenFormat = errors.New("invalid session token format")

	tokenFormatRegex = regexp.MustCompile(`^whv_[a-f0-9]{64}$`)
)

// GenerateSessionToken creates a new random session token.
func GenerateSessionToken() (string, error) {
	secret := make([]byte, tokenSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return "whv_" + hex.EncodeToString(secret), nil
}

// ValidateTokenFormat checks if the token matches the expected format.
// Used to reject garbage before touching the session store.
func ValidateTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
