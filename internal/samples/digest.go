package samples

import (
	"crypto/md5"
	"encoding/hex"
)

// DigestLen is the length of every string returned by Digest.
const DigestLen = md5.Size * 2

// Digest returns the MD5 of b as lowercase hex.
func Digest(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
