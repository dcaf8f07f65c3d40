package arraycache

import (
	"errors"

	"github.com/spf13/afero"
)

// Func is the signature contract for functions the cache can wrap: one
// Call in, one numeric array out.
type Func func(call *Call) (*Array, error)

// Wrap returns a cached variant of fn. The name identifies fn in cache
// keys and must be stable across processes for entries to be shared.
//
// Calling the returned function derives the key from name and the
// call's canonicalized arguments, returns the decoded entry on a hit,
// and otherwise invokes fn, persists its result, and returns it.
// Concurrent callers with the same key share a single invocation of fn.
// A failure of fn is propagated unchanged and nothing is cached for it.
func (c *Cache) Wrap(name string, fn Func) Func {
	return func(call *Call) (*Array, error) {
		key := c.keyFor(name, call)

		v, err, _ := c.group.Do(key, func() (any, error) {
			return c.lookupOrCompute(key, fn, call)
		})
		if err != nil {
			return nil, err
		}
		return v.(*Array), nil
	}
}

// lookupOrCompute performs the check-then-compute-then-store sequence
// for one key. The read lock is held for the whole sequence so Clear
// and Remove cannot interleave with it; distinct keys still proceed in
// parallel.
func (c *Cache) lookupOrCompute(key string, fn Func, call *Call) (*Array, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, err := c.load(key)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	result, err = fn(call)
	if err != nil {
		return nil, err
	}
	if err := c.store(key, result); err != nil {
		return nil, err
	}
	return result, nil
}

// load reads and decodes the entry for a key.
// Returns ErrCacheMiss if no entry exists. A file that exists but does
// not decode is reported as a SerializationError, never as a miss, so
// on-disk corruption is surfaced instead of silently recomputed.
func (c *Cache) load(key string) (*Array, error) {
	path := c.entryPath(key)

	exists, err := afero.Exists(c.fs, path)
	if err != nil {
		return nil, newStorageError("stat", path, err)
	}
	if !exists {
		return nil, ErrCacheMiss
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, newStorageError("read", path, err)
	}

	var result Array
	if err := result.UnmarshalBinary(data); err != nil {
		return nil, newSerializationError(path, err)
	}
	return &result, nil
}

// store encodes result and writes it to the key's entry file, creating
// the cache directory on first use. The write goes to a temporary file
// that is renamed into place, so a concurrent reader, in this process
// or a cooperating one, only ever sees a complete entry or none.
func (c *Cache) store(key string, result *Array) error {
	if result == nil {
		return newSerializationError("", errors.New("function returned a nil array"))
	}

	data, err := result.MarshalBinary()
	if err != nil {
		return newSerializationError("", err)
	}

	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return newStorageError("mkdir", c.dir, err)
	}

	tmp, err := afero.TempFile(c.fs, c.dir, key+".*.tmp")
	if err != nil {
		return newStorageError("create", c.dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		c.fs.Remove(tmpPath)
		return newStorageError("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		c.fs.Remove(tmpPath)
		return newStorageError("close", tmpPath, err)
	}

	path := c.entryPath(key)
	if err := c.fs.Rename(tmpPath, path); err != nil {
		c.fs.Remove(tmpPath)
		return newStorageError("rename", path, err)
	}
	return nil
}
