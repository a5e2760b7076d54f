// Package auth verifies bearer tokens that identify the acting user.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PASETO v4 requires a 256-bit symmetric key.
const keyLength = 32

// LoadOrGenerateKey reads the hex-encoded key at path, creating it with a
// fresh random key when the file is missing.
func LoadOrGenerateKey(path string) ([]byte, error) {
	//#nosec G304 -- path is derived from the configured data directory
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		keyHex := strings.TrimSpace(string(raw))
		if len(keyHex) != hex.EncodedLen(keyLength) {
			return nil, fmt.Errorf("invalid token key length: expected %d hex chars, got %d", hex.EncodedLen(keyLength), len(keyHex))
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid token key format: %w", err)
		}
		return key, nil
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read token key: %w", err)
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate token key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save token key: %w", err)
	}
	return key, nil
}
