package graph

import (
	"crypto/md5"
	"encoding/hex"
)

// ID returns the node id for a title: the hex MD5 digest of its UTF-8 bytes.
// The digest is an identity key, not a security boundary.
func ID(title string) string {
	sum := md5.Sum([]byte(title))
	return hex.EncodeToString(sum[:])
}
