package domain

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ContentHash is the 64-bit xxHash digest of a package's tarball bytes.
// It is the key of every cache tier.
type ContentHash uint64

// HashBytes computes the ContentHash of data.
func HashBytes(data []byte) ContentHash {
	return ContentHash(xxhash.Sum64(data))
}

// String returns the hash as 16 lowercase hex digits.
func (h ContentHash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// ParseContentHash parses the output of ContentHash.String.
func ParseContentHash(s string) (ContentHash, error) {
	if len(s) != 16 {
		return 0, zerr.With(ErrInvalidHash, "hash", s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, ErrInvalidHash.Error()), "hash", s)
	}
	return ContentHash(v), nil
}
