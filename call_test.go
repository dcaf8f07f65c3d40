package arraycache

import (
	"strings"
	"testing"
)

func TestFingerprintDeterminism(t *testing.T) {
	a := NewCall(7, "label", 3.5).With("scale", 2).fingerprint("fn")
	b := NewCall(7, "label", 3.5).With("scale", 2).fingerprint("fn")

	if a != b {
		t.Fatalf("Equal calls produced different fingerprints:\n%s\n%s", a, b)
	}
}

func TestFingerprintKeywordOrderIndependent(t *testing.T) {
	a := NewCall(1).With("x", 1).With("y", 2).With("z", 3).fingerprint("fn")
	b := NewCall(1).With("z", 3).With("y", 2).With("x", 1).fingerprint("fn")

	if a != b {
		t.Fatalf("Keyword order changed the fingerprint:\n%s\n%s", a, b)
	}
}

func TestFingerprintPositionalOrderDependent(t *testing.T) {
	a := NewCall(1, 2).fingerprint("fn")
	b := NewCall(2, 1).fingerprint("fn")

	if a == b {
		t.Fatalf("Positional order should change the fingerprint, both are %s", a)
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"different values", NewCall(1).fingerprint("fn"), NewCall(2).fingerprint("fn")},
		{"different types", NewCall(1).fingerprint("fn"), NewCall(1.0).fingerprint("fn")},
		{"different names", NewCall(1).fingerprint("fn"), NewCall(1).fingerprint("gn")},
		{"different kwargs", NewCall().With("x", 1).fingerprint("fn"), NewCall().With("y", 1).fingerprint("fn")},
		{"positional vs keyword", NewCall(1).fingerprint("fn"), NewCall().With("x", 1).fingerprint("fn")},
	}

	for _, tc := range cases {
		if tc.a == tc.b {
			t.Errorf("%s: expected distinct fingerprints, both are %s", tc.name, tc.a)
		}
	}
}

func TestFingerprintMapArgumentDeterministic(t *testing.T) {
	// Map iteration order must not leak into the fingerprint.
	a := NewCall(map[string]int{"a": 1, "b": 2, "c": 3}).fingerprint("fn")
	for i := 0; i < 50; i++ {
		b := NewCall(map[string]int{"c": 3, "a": 1, "b": 2}).fingerprint("fn")
		if a != b {
			t.Fatalf("Map argument produced unstable fingerprint:\n%s\n%s", a, b)
		}
	}
}

func TestFingerprintShape(t *testing.T) {
	fp := NewCall(7).With("to", 42).fingerprint("sequence")

	if !strings.HasPrefix(fp, "sequence(") || !strings.HasSuffix(fp, ")") {
		t.Fatalf("Fingerprint does not have the name(...) shape: %s", fp)
	}
	if !strings.Contains(fp, "to=") {
		t.Fatalf("Fingerprint is missing the keyword argument: %s", fp)
	}
}

func TestCallAccessors(t *testing.T) {
	call := NewCall(7, "mid").With("to", 42)

	if call.NArgs() != 2 {
		t.Fatalf("Expected 2 positional args, got %d", call.NArgs())
	}
	if call.Arg(0) != 7 || call.Arg(1) != "mid" {
		t.Fatalf("Wrong positional args: %v, %v", call.Arg(0), call.Arg(1))
	}
	if call.Arg(2) != nil || call.Arg(-1) != nil {
		t.Fatalf("Out-of-range Arg should be nil")
	}

	v, ok := call.Kwarg("to")
	if !ok || v != 42 {
		t.Fatalf("Wrong keyword arg: %v, %v", v, ok)
	}
	if _, ok := call.Kwarg("from"); ok {
		t.Fatalf("Unexpected keyword arg present")
	}
}

func TestKeyForNilCall(t *testing.T) {
	cache := NewTemp()

	// A nil call keys the same as an empty one.
	if cache.keyFor("fn", nil) != cache.keyFor("fn", NewCall()) {
		t.Fatalf("nil call and empty call should share a key")
	}
}
