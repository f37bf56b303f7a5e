package project

import (
	"crypto/sha256"
)

// Digest is a SHA-256 sum, the same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by parts. Cache keys depend on the order
// of parts, so callers pass them in a fixed order.
func Combine(content Digest, parts ...Digest) Digest {
	buf := make([]byte, 0, len(content)*(len(parts)+1))
	buf = append(buf, content[:]...)
	for _, p := range parts {
		buf = append(buf, p[:]...)
	}
	return sha256.Sum256(buf)
}

// DigestOf hashes an option string for use as a Combine part.
func DigestOf(s string) Digest {
	return sha256.Sum256([]byte(s))
}
