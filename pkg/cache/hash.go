package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	return fmt.Sprintf("%s:%s", prefix, ContentHash(parts...))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ContentHash hashes the JSON encoding of parts. Order matters: the same
// values in a different order hash differently.
func ContentHash(parts ...any) string {
	data, _ := json.Marshal(parts)
	return Hash(data)
}
