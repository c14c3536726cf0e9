package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is mixed into every key. Bump it when the cached projection or
// artifact encoding changes so entries written by older builds never match.
const keyVersion = 1

// hashKey returns "<space>:<digest>" where digest covers keyVersion and the
// JSON encoding of each part in order.
func hashKey(space string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(keyVersion)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return space + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 digest of a workspace document or an encoded
// graph.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
