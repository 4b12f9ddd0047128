package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex SHA-256 of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ETag is a strong entity tag for a response body.
func ETag(body []byte) string {
	return `"` + SHA256Hex(body)[:32] + `"`
}
