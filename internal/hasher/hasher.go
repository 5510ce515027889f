// Package hasher computes short content hashes for manifest entries.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// hexLen is the emitted hash length: 16 hex chars, the full 64 bits.
const hexLen = 16

// ContentHash returns the xxHash64 of data as a 16-char hex string.
func ContentHash(data []byte) string {
	return format(xxhash.Sum64(data))
}

// ContentHashReader computes the hash from a reader, streaming.
func ContentHashReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64()), nil
}

func format(sum uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	return hex.EncodeToString(b[:])[:hexLen]
}
