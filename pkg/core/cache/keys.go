package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// HashKey derives a fixed-length key from arbitrary input parts. Parts are
// length-prefixed so ("ab", "c") and ("a", "bc") differ.
func HashKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		writeLength(h, len(p))
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeLength(h hash.Hash, n int) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(n >> (8 * i))
	}
	h.Write(buf[:])
}
