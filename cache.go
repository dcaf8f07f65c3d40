package arraycache

import (
	"fmt"
	"hash"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"
)

// entryExt is the filename extension of persisted cache entries.
const entryExt = ".arr"

// Cache memoizes functions that produce numeric arrays, persisting each
// result as one file in a cache directory. Entries survive process
// restarts and can be shared between processes pointed at the same
// directory. Entries live until explicitly cleared; the cache never
// evicts and never detects a changed function body behind an unchanged
// name.
type Cache struct {
	dir      string
	hashFunc HashFunc
	nowFunc  NowFunc
	fs       afero.Fs
	mu       sync.RWMutex
	group    singleflight.Group
}

// HashFunc defines a function that creates a new hash.Hash instance.
type HashFunc func() hash.Hash

// NowFunc defines a function that returns the current time.
type NowFunc func() time.Time

// Option defines a function that configures a Cache.
type Option func(*Cache)

// New creates a cache backed by the given directory. The directory does
// not need to exist yet; it is created on the first write.
func New(dir string, options ...Option) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory must not be empty")
	}

	cache := &Cache{
		dir:      dir,
		fs:       afero.NewOsFs(),
		nowFunc:  time.Now,
		hashFunc: defaultHashFunc,
	}

	for _, option := range options {
		option(cache)
	}

	return cache, nil
}

// NewTemp creates a cache on an in-memory filesystem for testing.
func NewTemp() *Cache {
	cache, err := New("cache", WithFs(afero.NewMemMapFs()))
	if err != nil {
		panic(fmt.Sprintf("failed to create temp cache: %v", err))
	}
	return cache
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Has reports whether an entry exists for the given function name and
// call. It never computes anything. Returns false on probe errors.
func (c *Cache) Has(name string, call *Call) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	exists, err := afero.Exists(c.fs, c.entryPath(c.keyFor(name, call)))
	return err == nil && exists
}

// Remove deletes the entry for the given function name and call.
// Removing an absent entry is a no-op.
func (c *Cache) Remove(name string, call *Call) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.entryPath(c.keyFor(name, call))
	exists, err := afero.Exists(c.fs, path)
	if err != nil {
		return newStorageError("stat", path, err)
	}
	if !exists {
		return nil
	}
	if err := c.fs.Remove(path); err != nil {
		return newStorageError("remove", path, err)
	}
	return nil
}

// Clear deletes every entry file in the cache directory. If removeDir
// is true the emptied directory is removed as well. Clearing a missing
// or empty directory is a no-op, not an error.
func (c *Cache) Clear(removeDir bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exists, err := afero.DirExists(c.fs, c.dir)
	if err != nil {
		return newStorageError("stat", c.dir, err)
	}
	if !exists {
		return nil
	}

	infos, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		return newStorageError("read", c.dir, err)
	}

	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, info.Name())
		if err := c.fs.Remove(path); err != nil {
			return newStorageError("remove", path, err)
		}
	}

	if removeDir {
		// Non-recursive on purpose: leftover subdirectories were not
		// created by this cache and must not be destroyed silently.
		if err := c.fs.Remove(c.dir); err != nil {
			return newStorageError("remove", c.dir, err)
		}
	}

	return nil
}

// keyFor computes the cache key for a (function name, call) pair. The
// key covers the name and the canonicalized arguments only; the
// function body is deliberately not part of it, so renaming is the
// caller's tool for invalidation after a logic change.
func (c *Cache) keyFor(name string, call *Call) string {
	if call == nil {
		call = NewCall()
	}
	h := c.hashFunc()
	h.Write([]byte(call.fingerprint(name)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// entryPath returns the path of the entry file for a key.
func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

// now returns the current time.
func (c *Cache) now() time.Time {
	return c.nowFunc()
}

// defaultHashFunc returns the default hash function (xxHash64).
func defaultHashFunc() hash.Hash {
	return xxhash.New()
}
