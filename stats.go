package arraycache

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Stats represents cache statistics.
type Stats struct {
	Entries     int           // Total number of cache entries
	TotalSize   int64         // Total size of all entry files in bytes
	OldestEntry time.Duration // Age of the oldest entry
	NewestEntry time.Duration // Age of the newest entry
}

// Entry represents a single cache entry for iteration.
type Entry struct {
	Key     string    // Cache key, as it appears in the filename
	Size    int64     // Entry file size in bytes
	ModTime time.Time // When the entry was written
}

// Stats returns statistics about the cache.
// A missing cache directory yields zero statistics, not an error.
func (c *Cache) Stats() (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{}
	var oldest, newest time.Time

	err := c.walkEntries(func(key string, info os.FileInfo) {
		stats.Entries++
		stats.TotalSize += info.Size()

		mod := info.ModTime()
		if oldest.IsZero() || mod.Before(oldest) {
			oldest = mod
		}
		if newest.IsZero() || mod.After(newest) {
			newest = mod
		}
	})
	if err != nil {
		return Stats{}, err
	}

	now := c.now()
	if !oldest.IsZero() {
		stats.OldestEntry = now.Sub(oldest)
	}
	if !newest.IsZero() {
		stats.NewestEntry = now.Sub(newest)
	}

	return stats, nil
}

// Entries returns all cache entries, sorted by key.
func (c *Cache) Entries() ([]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var entries []Entry

	err := c.walkEntries(func(key string, info os.FileInfo) {
		entries = append(entries, Entry{
			Key:     key,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries, nil
}

// walkEntries calls fn for every entry file in the cache directory.
// Files without the entry extension are skipped.
func (c *Cache) walkEntries(fn func(key string, info os.FileInfo)) error {
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
		if info.IsDir() || !strings.HasSuffix(info.Name(), entryExt) {
			continue
		}
		fn(strings.TrimSuffix(info.Name(), entryExt), info)
	}

	return nil
}
