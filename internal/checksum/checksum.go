package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/starford/quicknote/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Note returns a version tag for n covering id, timestamp and text.
// Any save changes the tag, so it can be used as an HTTP ETag.
func Note(n models.Note) string {
	buf := make([]byte, 0, len(n.Text)+40)
	buf = strconv.AppendInt(buf, n.ID, 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, n.ModifiedAt, 10)
	buf = append(buf, ':')
	buf = append(buf, n.Text...)
	return Sum(buf)
}
