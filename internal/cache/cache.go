// Package cache provides the in-memory TTL cache for verification
// responses. The knowledge graph is static for the process lifetime,
// so a cached result for a given input text stays valid until the
// entry expires. Nothing is persisted.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the response cache interface.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Clear()
}

// Key derives a cache key from the raw input text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "factlens:v1:" + hex.EncodeToString(hash[:])
}
