package driver

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/compiler/diagfmt"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	require.NoError(t, err)
	key := CacheKey(sha256.Sum256([]byte("f : N\n")))
	rec := &record{
		Schema: cacheSchema,
		Path:   "a.fern",
		Decls:  3,
		Diags: []diagfmt.Diagnostic{
			{Msg: "missing definition for \"f\"", Pos: 0, End: 5, Notes: []string{"did you mean \"g\"?"}},
		},
	}
	require.NoError(t, c.put(key, rec))
	got, ok := c.get(key)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = c.get(CacheKey(sha256.Sum256([]byte("other"))))
	assert.False(t, ok)
}

func TestCacheSchemaMismatch(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	require.NoError(t, err)
	key := CacheKey(sha256.Sum256([]byte("stale")))
	require.NoError(t, c.put(key, &record{Schema: cacheSchema + 1}))
	_, ok := c.get(key)
	assert.False(t, ok)
}

func TestCacheNil(t *testing.T) {
	var c *Cache
	_, ok := c.get(CacheKey{})
	assert.False(t, ok)
	assert.NoError(t, c.put(CacheKey{}, &record{}))
}
