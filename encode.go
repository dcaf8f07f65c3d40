package arraycache

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// On-disk entry layout: a fixed header, the dimensions, the raw
// little-endian element data, and a checksum over everything before it.
//
//	magic    [4]byte "arrc"
//	version  uint8
//	dtype    uint8
//	ndim     uint8
//	dims     ndim × uint64
//	data     len × dtype.Size() bytes
//	checksum uint64 (xxHash64)
const (
	entryMagic   = "arrc"
	entryVersion = 1
	maxDims      = 255
)

var errChecksum = errors.New("checksum mismatch")

// MarshalBinary encodes the array into the entry format.
// It implements encoding.BinaryMarshaler.
func (a *Array) MarshalBinary() ([]byte, error) {
	if !a.dtype.valid() {
		return nil, fmt.Errorf("unknown dtype %d", uint8(a.dtype))
	}
	if len(a.shape) > maxDims {
		return nil, fmt.Errorf("too many dimensions: %d", len(a.shape))
	}

	buf := make([]byte, 0, 7+8*len(a.shape)+len(a.data)+8)
	buf = append(buf, entryMagic...)
	buf = append(buf, entryVersion, byte(a.dtype), byte(len(a.shape)))
	for _, dim := range a.shape {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(dim))
	}
	buf = append(buf, a.data...)
	buf = binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf))

	return buf, nil
}

// UnmarshalBinary decodes an entry produced by MarshalBinary.
// It implements encoding.BinaryUnmarshaler. Any truncation, unknown
// header field, or checksum mismatch is an error; a partially decoded
// array is never returned.
func (a *Array) UnmarshalBinary(data []byte) error {
	if len(data) < 7+8 {
		return fmt.Errorf("entry too short: %d bytes", len(data))
	}
	if string(data[:4]) != entryMagic {
		return fmt.Errorf("bad magic %q", data[:4])
	}
	if data[4] != entryVersion {
		return fmt.Errorf("unsupported entry version %d", data[4])
	}

	dtype := DType(data[5])
	if !dtype.valid() {
		return fmt.Errorf("unknown dtype %d", data[5])
	}

	// Verify the checksum before trusting any of the remaining fields.
	body, sum := data[:len(data)-8], binary.LittleEndian.Uint64(data[len(data)-8:])
	if xxhash.Sum64(body) != sum {
		return errChecksum
	}

	ndim := int(data[6])
	rest := body[7:]
	if len(rest) < 8*ndim {
		return fmt.Errorf("entry truncated in dimensions: %d bytes for %d dims", len(rest), ndim)
	}

	shape := make([]int, ndim)
	elems := 1
	for i := range shape {
		dim := binary.LittleEndian.Uint64(rest[i*8:])
		if dim > uint64(1<<31) {
			return fmt.Errorf("dimension %d too large: %d", i, dim)
		}
		shape[i] = int(dim)
		elems *= int(dim)
	}

	raw := rest[8*ndim:]
	if len(raw) != elems*dtype.Size() {
		return fmt.Errorf("entry has %d data bytes, want %d", len(raw), elems*dtype.Size())
	}

	a.dtype = dtype
	a.shape = shape
	a.data = append([]byte(nil), raw...)
	return nil
}
