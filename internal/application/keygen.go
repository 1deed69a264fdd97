package application

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// appKeyGroupSize is the number of hex characters per dash-separated
	// group in a generated app key.
	appKeyGroupSize = 8

	// appSecretBytes is the number of random bytes behind an app secret.
	// Hex encoding doubles it to an 80-character string.
	appSecretBytes = 40
)

// GenerateAppKey produces a candidate app key: the hex SHA-256 digest of a
// fresh UUID, the current time, and 16 random bytes, regrouped into eight
// dash-separated groups of eight characters. Uniqueness is probabilistic
// here; the issuing service checks the store before accepting a candidate.
func GenerateAppKey() (string, error) {
	nonce := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	material := fmt.Sprintf("%s_%d_%s", uuid.New(), time.Now().UnixNano(), hex.EncodeToString(nonce))
	digest := sha256.Sum256([]byte(material))

	return groupHex(hex.EncodeToString(digest[:])), nil
}

// GenerateAppSecret produces an app secret: 40 random bytes hex-encoded.
func GenerateAppSecret() (string, error) {
	secret := make([]byte, appSecretBytes)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return "", fmt.Errorf("rand secret: %w", err)
	}

	return hex.EncodeToString(secret), nil
}

// groupHex splits a hex digest into dash-separated groups of appKeyGroupSize
// characters.
func groupHex(digest string) string {
	groups := make([]string, 0, len(digest)/appKeyGroupSize)
	for i := 0; i < len(digest); i += appKeyGroupSize {
		groups = append(groups, digest[i:i+appKeyGroupSize])
	}
	return strings.Join(groups, "-")
}
