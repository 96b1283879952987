package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CodeIndex returns a deterministic index into the code space for a date
// using HMAC(salt, YYYY-MM-DD) % spaceSize. Every player gets the same
// secret code for the same date and salt.
func CodeIndex(date time.Time, salt string, spaceSize int) int {
	if spaceSize <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(spaceSize))
}
