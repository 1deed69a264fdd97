// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	EncryptionKey []byte
	ListenAddr    string
	DBPath        string
	CORSOrigins   []string
}

// Load reads configuration from environment variables and returns a validated
// Config. SVCREGISTRY_ENCRYPTION_KEY is required: 64 hex characters decoding
// to the 32-byte AES-256 key. A missing or malformed key fails startup here
// instead of surfacing on the first wrap. Optional variables with defaults:
// SVCREGISTRY_LISTEN_ADDR (127.0.0.1:8080), SVCREGISTRY_DB_PATH
// (svcregistry.db). SVCREGISTRY_CORS_ORIGINS is a comma-separated list of
// allowed browser origins; empty means CORS headers are not served.
func Load() (*Config, error) {
	rawKey := os.Getenv("SVCREGISTRY_ENCRYPTION_KEY")
	if rawKey == "" {
		return nil, fmt.Errorf("SVCREGISTRY_ENCRYPTION_KEY is required")
	}

	key, err := hex.DecodeString(rawKey)
	if err != nil {
		return nil, fmt.Errorf("SVCREGISTRY_ENCRYPTION_KEY is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("SVCREGISTRY_ENCRYPTION_KEY must be 64 hex chars (32 bytes), got %d bytes", len(key))
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("SVCREGISTRY_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "svcregistry.db"
	if v, ok := os.LookupEnv("SVCREGISTRY_DB_PATH"); ok {
		dbPath = v
	}

	var corsOrigins []string
	if v, ok := os.LookupEnv("SVCREGISTRY_CORS_ORIGINS"); ok && v != "" {
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}
	if corsOrigins == nil {
		corsOrigins = []string{}
	}

	return &Config{
		EncryptionKey: key,
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		CORSOrigins:   corsOrigins,
	}, nil
}
