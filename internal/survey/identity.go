package survey

import (
	"crypto/sha1"
	"encoding/hex"
)

// FileIDPrefix tags content-addressed survey uploads.
const FileIDPrefix = "stg-"

// FileID derives the content-addressed identifier for an upload. Identical
// bytes always yield the same id, which is what makes deduplication and
// immutable caching of the derived canonical table safe.
func FileID(raw []byte) string {
	sum := sha1.Sum(raw)
	return FileIDPrefix + hex.EncodeToString(sum[:])
}
