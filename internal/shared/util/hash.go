package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a hex SHA-256 of s with surrounding whitespace removed, so
// history rows can group requests for the same job offer without storing its text.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(s)))
	return hex.EncodeToString(sum[:])
}
