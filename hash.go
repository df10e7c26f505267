package lingopipe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key for a translation request. The source and
// target languages are part of the hashed identity so the same text cached
// for different language pairs never collides.
func CacheKey(text, source, target string) string {
	identity := source + ":" + target + ":" + strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(hash[:]) + ":" + target
}
