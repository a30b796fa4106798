package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateRecoveryToken returns a cryptographically random opaque token
// string. The uuid suffix guarantees global uniqueness even in the
// astronomically unlikely event of a random collision.
func GenerateRecoveryToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate recovery token: %w", err)
	}

	return hex.EncodeToString(buf) + "." + uuid.NewString(), nil
}

// GenerateJTI returns a unique id for a JWT "jti" claim.
func GenerateJTI() string {
	return uuid.NewString()
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// writes go through this so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
