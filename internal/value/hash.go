package value

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashWithDomain computes a SHA-256 hash of data under a domain prefix,
// separated by a NUL byte so that two different (domain, data) pairs never
// collide on the boundary between domain and payload.
//
// Format: SHA256(domain + 0x00 + data)
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashValue canonically serializes v and hashes it under domain. Returns an
// error only if v contains something MarshalCanonical rejects (a nil
// Value, anywhere in the value tree).
func HashValue(domain string, v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return HashWithDomain(domain, canonical), nil
}
