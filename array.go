package arraycache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// DType identifies the element type of an Array.
type DType uint8

// Supported element types.
const (
	Float64 DType = iota + 1
	Float32
	Int64
	Int32
)

// Size returns the size of one element in bytes.
func (d DType) Size() int {
	switch d {
	case Float64, Int64:
		return 8
	case Float32, Int32:
		return 4
	default:
		return 0
	}
}

// String returns the name of the dtype.
func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// valid reports whether d is a known dtype.
func (d DType) valid() bool {
	return d.Size() != 0
}

// Array is an immutable numeric array with an element type and a shape.
// It is the value type cached by this package: constructors copy their
// input, accessors return copies, and the on-disk codec round-trips
// dtype, shape, and values exactly.
type Array struct {
	dtype DType
	shape []int
	data  []byte // Raw elements, little-endian
}

// newArray validates shape against the element count and builds an Array.
func newArray(dtype DType, n int, shape []int) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{n}
	}
	elems := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("negative dimension %d in shape %v", dim, shape)
		}
		elems *= dim
	}
	if elems != n {
		return nil, fmt.Errorf("shape %v holds %d elements, have %d values", shape, elems, n)
	}
	return &Array{
		dtype: dtype,
		shape: append([]int(nil), shape...),
		data:  make([]byte, n*dtype.Size()),
	}, nil
}

// FromFloat64s builds a float64 Array from values.
// Without an explicit shape the array is one-dimensional.
func FromFloat64s(values []float64, shape ...int) (*Array, error) {
	a, err := newArray(Float64, len(values), shape)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		binary.LittleEndian.PutUint64(a.data[i*8:], math.Float64bits(v))
	}
	return a, nil
}

// FromFloat32s builds a float32 Array from values.
func FromFloat32s(values []float32, shape ...int) (*Array, error) {
	a, err := newArray(Float32, len(values), shape)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		binary.LittleEndian.PutUint32(a.data[i*4:], math.Float32bits(v))
	}
	return a, nil
}

// FromInt64s builds an int64 Array from values.
func FromInt64s(values []int64, shape ...int) (*Array, error) {
	a, err := newArray(Int64, len(values), shape)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		binary.LittleEndian.PutUint64(a.data[i*8:], uint64(v))
	}
	return a, nil
}

// FromInt32s builds an int32 Array from values.
func FromInt32s(values []int32, shape ...int) (*Array, error) {
	a, err := newArray(Int32, len(values), shape)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		binary.LittleEndian.PutUint32(a.data[i*4:], uint32(v))
	}
	return a, nil
}

// DType returns the element type.
func (a *Array) DType() DType {
	return a.dtype
}

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Len returns the total number of elements.
func (a *Array) Len() int {
	return len(a.data) / a.dtype.Size()
}

// Float64s returns the elements of a float64 array.
// Returns an error if the array has a different dtype.
func (a *Array) Float64s() ([]float64, error) {
	if a.dtype != Float64 {
		return nil, fmt.Errorf("array is %s, not float64", a.dtype)
	}
	out := make([]float64, a.Len())
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(a.data[i*8:]))
	}
	return out, nil
}

// Float32s returns the elements of a float32 array.
// Returns an error if the array has a different dtype.
func (a *Array) Float32s() ([]float32, error) {
	if a.dtype != Float32 {
		return nil, fmt.Errorf("array is %s, not float32", a.dtype)
	}
	out := make([]float32, a.Len())
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.data[i*4:]))
	}
	return out, nil
}

// Int64s returns the elements of an int64 array.
// Returns an error if the array has a different dtype.
func (a *Array) Int64s() ([]int64, error) {
	if a.dtype != Int64 {
		return nil, fmt.Errorf("array is %s, not int64", a.dtype)
	}
	out := make([]int64, a.Len())
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(a.data[i*8:]))
	}
	return out, nil
}

// Int32s returns the elements of an int32 array.
// Returns an error if the array has a different dtype.
func (a *Array) Int32s() ([]int32, error) {
	if a.dtype != Int32 {
		return nil, fmt.Errorf("array is %s, not int32", a.dtype)
	}
	out := make([]int32, a.Len())
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(a.data[i*4:]))
	}
	return out, nil
}

// Equal reports whether two arrays have the same dtype, shape, and
// element bytes. NaN elements compare equal to themselves since the
// comparison is bitwise.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.dtype != b.dtype || len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	return bytes.Equal(a.data, b.data)
}

// String returns a short description for debugging and logging.
func (a *Array) String() string {
	return fmt.Sprintf("Array(%s, shape=%v)", a.dtype, a.shape)
}
