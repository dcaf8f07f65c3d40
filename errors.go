package arraycache

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss is returned when a cache entry is not found.
	ErrCacheMiss = errors.New("cache miss")
)

// StorageError represents a failure to create, read, write, or delete
// cache files or the cache directory. The underlying cause is typically
// an I/O or permission error.
type StorageError struct {
	Op   string // Operation that failed: "mkdir", "read", "write", "remove", ...
	Path string // Path involved in the failure
	Err  error  // Underlying cause
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// SerializationError represents a value that cannot be encoded as a
// numeric array, or a cache entry that cannot be decoded because it is
// corrupt or truncated on disk.
type SerializationError struct {
	Path string // Path of the entry, empty when encoding a fresh result
	Err  error  // Underlying cause
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("serialization failed: %v", e.Err)
	}
	return fmt.Sprintf("serialization failed for %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// newStorageError wraps err as a StorageError.
func newStorageError(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}

// newSerializationError wraps err as a SerializationError.
func newSerializationError(path string, err error) error {
	return &SerializationError{Path: path, Err: err}
}
