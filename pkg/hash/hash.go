package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// SecretFingerprint returns a short, irreversible hash prefix of a
// credential secret for log correlation. Raw secrets never reach logs.
func SecretFingerprint(secret string) string {
	return SHA256Hex(secret)[:12]
}
