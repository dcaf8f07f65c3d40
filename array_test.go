package arraycache

import (
	"math"
	"strings"
	"testing"
)

func TestArrayConstructorsAndAccessors(t *testing.T) {
	a, err := FromFloat64s([]float64{1.5, -2.5, math.NaN()})
	if err != nil {
		t.Fatalf("Failed to build array: %v", err)
	}
	if a.DType() != Float64 {
		t.Fatalf("Wrong dtype: %v", a.DType())
	}
	if a.Len() != 3 {
		t.Fatalf("Wrong length: %d", a.Len())
	}
	if shape := a.Shape(); len(shape) != 1 || shape[0] != 3 {
		t.Fatalf("Wrong default shape: %v", shape)
	}

	values, err := a.Float64s()
	if err != nil {
		t.Fatalf("Failed to read values: %v", err)
	}
	if values[0] != 1.5 || values[1] != -2.5 || !math.IsNaN(values[2]) {
		t.Fatalf("Wrong values: %v", values)
	}

	// Accessing with the wrong dtype is an error, not a conversion.
	if _, err := a.Int64s(); err == nil {
		t.Fatalf("Expected dtype mismatch error")
	}
}

func TestArrayShapeValidation(t *testing.T) {
	if _, err := FromInt32s([]int32{1, 2, 3, 4, 5, 6}, 2, 3); err != nil {
		t.Fatalf("Valid 2x3 shape rejected: %v", err)
	}
	if _, err := FromInt32s([]int32{1, 2, 3}, 2, 2); err == nil {
		t.Fatalf("Expected error for shape/value count mismatch")
	}
	if _, err := FromInt32s([]int32{1}, -1); err == nil {
		t.Fatalf("Expected error for negative dimension")
	}
}

func TestArrayEqual(t *testing.T) {
	a, _ := FromFloat64s([]float64{1, 2, 3, 4}, 2, 2)
	b, _ := FromFloat64s([]float64{1, 2, 3, 4}, 2, 2)
	flat, _ := FromFloat64s([]float64{1, 2, 3, 4})
	other, _ := FromFloat64s([]float64{1, 2, 3, 5}, 2, 2)

	if !a.Equal(b) {
		t.Fatalf("Identical arrays compare unequal")
	}
	if a.Equal(flat) {
		t.Fatalf("Different shapes compare equal")
	}
	if a.Equal(other) {
		t.Fatalf("Different values compare equal")
	}

	nan1, _ := FromFloat64s([]float64{math.NaN()})
	nan2, _ := FromFloat64s([]float64{math.NaN()})
	if !nan1.Equal(nan2) {
		t.Fatalf("Bitwise-equal NaN arrays compare unequal")
	}
}

func TestArrayRoundTrip(t *testing.T) {
	f32, _ := FromFloat32s([]float32{1.25, -0.5, 3e7}, 3, 1)
	i64, _ := FromInt64s([]int64{math.MinInt64, 0, math.MaxInt64})
	i32, _ := FromInt32s([]int32{-1, 0, 1, 2, 3, 4}, 2, 3)
	empty, _ := FromFloat64s(nil)

	for _, a := range []*Array{f32, i64, i32, empty} {
		data, err := a.MarshalBinary()
		if err != nil {
			t.Fatalf("Failed to encode %v: %v", a, err)
		}

		var decoded Array
		if err := decoded.UnmarshalBinary(data); err != nil {
			t.Fatalf("Failed to decode %v: %v", a, err)
		}
		if !decoded.Equal(a) {
			t.Fatalf("Round trip changed %v into %v", a, &decoded)
		}
	}
}

func TestUnmarshalRejectsDamage(t *testing.T) {
	a, _ := FromFloat64s([]float64{1, 2, 3})
	good, err := a.MarshalBinary()
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	flipped := append([]byte(nil), good...)
	flipped[len(flipped)/2] ^= 0xff

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "nope")

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated header", good[:5]},
		{"truncated data", good[:len(good)-9]},
		{"flipped byte", flipped},
		{"bad magic", badMagic},
	}

	for _, tc := range cases {
		var decoded Array
		if err := decoded.UnmarshalBinary(tc.data); err == nil {
			t.Errorf("%s: expected decode error", tc.name)
		}
	}
}

func TestDTypeString(t *testing.T) {
	if Float64.String() != "float64" || Int32.String() != "int32" {
		t.Fatalf("Wrong dtype names: %v, %v", Float64, Int32)
	}
	if !strings.Contains(DType(99).String(), "99") {
		t.Fatalf("Unknown dtype should print its code: %v", DType(99))
	}
}
