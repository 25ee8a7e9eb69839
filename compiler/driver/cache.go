package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/fernlang/fern/compiler/diagfmt"
)

// cacheSchema invalidates every cached record when the record format
// changes.
const cacheSchema uint32 = 1

// A CacheKey is the SHA-256 digest of one source file's content.
type CacheKey [sha256.Size]byte

// A Cache holds per-file check results on disk, keyed by content so an
// unchanged file is never re-parsed.  A nil Cache misses every get and
// drops every put.  It is safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// A record is the cached outcome of checking one file.
type record struct {
	Schema uint32
	Path   string
	Decls  int
	Diags  []diagfmt.Diagnostic
}

// CacheDir returns the standard cache location, honoring XDG_CACHE_HOME
// and falling back to ~/.cache.
func CacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "fern"), nil
}

// OpenCache opens the cache rooted at dir, creating it if needed.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "checks"), 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key CacheKey) string {
	return filepath.Join(c.dir, "checks", hex.EncodeToString(key[:])+".mp")
}

// get reports a miss for an absent file, an undecodable file, or a
// record written by another schema.
func (c *Cache) get(key CacheKey) (*record, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	var rec record
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil || rec.Schema != cacheSchema {
		return nil, false
	}
	return &rec, true
}

// put stores a record atomically by encoding to a temp file and renaming
// it into place, so a concurrent get never sees a partial record.
func (c *Cache) put(key CacheKey, rec *record) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	path := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if err := msgpack.NewEncoder(f).Encode(rec); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
