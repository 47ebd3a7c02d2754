package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandHex returns n random bytes hex-encoded, so the result is 2n characters
// long. Used for opaque bearer tokens; callers pick n for the entropy they
// need (32 bytes gives 256 bits).
func RandHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
