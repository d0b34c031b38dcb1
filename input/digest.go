package input

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex SHA-256 of text. It identifies an input
// in logs and check reports.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns the first 12 hex characters of Digest.
func ShortDigest(text string) string {
	return Digest(text)[:12]
}
