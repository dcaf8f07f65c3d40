/*
Package arraycache provides file-based memoization for functions that
produce numeric arrays.

It wraps an array-producing function into a cached variant whose results
are persisted as files in a cache directory, keyed by a hash of the
function's name and its call arguments. Because entries live on disk,
the cache survives process restarts and can be shared across processes
that point at the same directory.

# Overview

The cache is a single component with a deliberately small surface:

  - Wrap turns a function into a cached variant.
  - Clear removes all entries, optionally including the directory.

A call to the wrapped function derives a deterministic key from the
function name and a canonical representation of the arguments, then
performs a get-or-compute-and-store against a file named by that key.
On a hit the entry is decoded and returned without invoking the
function; on a miss the function runs, its result is encoded and written
atomically, and the result is returned.

# Basic Usage

	cache, err := arraycache.New(".cache")
	if err != nil {
	    log.Fatal(err)
	}

	sequence := func(call *arraycache.Call) (*arraycache.Array, error) {
	    from := call.Arg(0).(int)
	    to := from
	    if v, ok := call.Kwarg("to"); ok {
	        to = v.(int)
	    }
	    values := make([]float64, 0, to-from)
	    for x := from; x < to; x++ {
	        values = append(values, float64(x))
	    }
	    return arraycache.FromFloat64s(values)
	}

	cached := cache.Wrap("sequence", sequence)

	// First call computes and persists; second call reads the entry.
	result, err := cached(arraycache.NewCall(7).With("to", 42))

# Keys

A key covers the function name, the positional arguments in call order,
and the keyword arguments in name order. Two calls that pass the same
keyword arguments in a different order hit the same entry. The function
body is not part of the key: if the logic behind a name changes, old
entries remain valid until the caller clears them or registers the
function under a new name.

# Arrays

Array is the value type being cached: an element type (float64, float32,
int64, int32), a shape, and the element data. Its binary encoding
round-trips dtype, shape, and values exactly and ends in a checksum, so
a damaged entry fails to decode instead of yielding wrong data.

# Concurrency

Concurrent callers of a wrapped function with the same arguments share a
single execution; the others receive the same result without recomputing.
Entries are written to a temporary file and renamed into place, so a
reader never observes a partially written entry. On filesystems with
atomic rename this extends to cooperating processes sharing the
directory.

# Error Handling

Failures surface as one of two error types:

  - StorageError: the directory or an entry file could not be created,
    read, written, or removed.
  - SerializationError: a result could not be encoded, or an entry on
    disk is corrupt.

Both propagate directly to the caller; nothing is retried or swallowed.
A corrupt entry is reported rather than treated as a miss. Errors from
the wrapped function itself pass through unchanged and nothing is cached
for the failed call.

	result, err := cached(arraycache.NewCall(7))
	var serr *arraycache.SerializationError
	if errors.As(err, &serr) {
	    // entry on disk is damaged, or the result was not encodable
	}

# File Structure

One file per key, flat inside the cache directory:

	.cache/
	├── 06df05371981a237.arr
	└── d0a9f1f4f8e6a2f3.arr

The directory is created lazily on the first write. Entries have no
expiry; they live until Clear or Remove deletes them.
*/
package arraycache
