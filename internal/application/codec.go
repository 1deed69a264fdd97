package application

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidToken is returned when a token cannot be authenticated. Malformed
// encoding, truncation, tampering, and a wrong key are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid client token")

// Codec wraps identifiers in authenticated AES-256-GCM tokens so they can
// travel through browsers and third-party services without exposing the
// underlying app key. Tokens are base64-encoded nonce || ciphertext || tag.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec creates a Codec from a 32-byte AES-256 key. Key problems surface
// here so a misconfigured deployment fails at startup, not on first use.
func NewCodec(key []byte) (*Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Wrap encrypts an identifier into an opaque token. A fresh random nonce per
// call means wrapping the same identifier twice yields different tokens.
func (c *Codec) Wrap(identifier string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := c.aead.Seal(nonce, nonce, []byte(identifier), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unwrap authenticates and decrypts a token produced by Wrap. Any failure
// collapses to ErrInvalidToken.
func (c *Codec) Unwrap(token string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrInvalidToken
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	identifier, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidToken
	}

	return string(identifier), nil
}
