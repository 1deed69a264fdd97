package application

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewCodec_RejectsBadKeyLength(t *testing.T) {
	_, err := NewCodec(make([]byte, 16))
	assert.Error(t, err, "AES-256 requires a 32-byte key")

	_, err = NewCodec(nil)
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	require.NoError(t, err)

	identifiers := []string{
		"deadbeef-00112233-44556677-8899aabb-ccddeeff-01234567-89abcdef-fedcba98",
		"",
		"short",
		strings.Repeat("x", 4096),
		"ünïcode-ідентифікатор-識別子",
	}

	for _, id := range identifiers {
		token, err := codec.Wrap(id)
		require.NoError(t, err)

		got, err := codec.Unwrap(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestCodec_WrapNotDeterministic(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	require.NoError(t, err)

	first, err := codec.Wrap("same-identifier")
	require.NoError(t, err)
	second, err := codec.Wrap("same-identifier")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each wrap should use a fresh nonce")
}

func TestCodec_Unwrap_Tampered(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	require.NoError(t, err)

	token, err := codec.Wrap("some-identifier")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)

	// Flipping any single bit must invalidate the token.
	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01

		_, err := codec.Unwrap(base64.StdEncoding.EncodeToString(tampered))
		assert.ErrorIs(t, err, ErrInvalidToken, "byte %d", i)
	}
}

func TestCodec_Unwrap_WrongKey(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	require.NoError(t, err)
	other, err := NewCodec(testKey(t))
	require.NoError(t, err)

	token, err := codec.Wrap("some-identifier")
	require.NoError(t, err)

	_, err = other.Unwrap(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Unwrap_Malformed(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	require.NoError(t, err)

	cases := map[string]string{
		"not base64":      "!!!not-base64!!!",
		"empty":           "",
		"too short":       base64.StdEncoding.EncodeToString([]byte("tiny")),
		"nonce only":      base64.StdEncoding.EncodeToString(make([]byte, 12)),
		"arbitrary bytes": base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Unwrap(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
