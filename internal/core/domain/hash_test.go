package domain_test

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgcore/internal/core/domain"
)

func TestHashBytes(t *testing.T) {
	data := []byte("package contents")
	h := domain.HashBytes(data)
	assert.Equal(t, domain.ContentHash(xxhash.Sum64(data)), h)
	assert.Equal(t, h, domain.HashBytes([]byte("package contents")))
	assert.NotEqual(t, h, domain.HashBytes([]byte("package content")))
}

func TestContentHash_String(t *testing.T) {
	assert.Equal(t, "00000000000000ff", domain.ContentHash(0xff).String())
	assert.Len(t, domain.HashBytes(nil).String(), 16)
	assert.Equal(t, "00000000000000ff.dxp", domain.CacheFileName(0xff))
}

func TestParseContentHash(t *testing.T) {
	h := domain.HashBytes([]byte("abc"))
	parsed, err := domain.ParseContentHash(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	_, err = domain.ParseContentHash("ff")
	assert.ErrorContains(t, err, "invalid content hash")

	_, err = domain.ParseContentHash("zzzzzzzzzzzzzzzz")
	assert.ErrorContains(t, err, "invalid content hash")
}
