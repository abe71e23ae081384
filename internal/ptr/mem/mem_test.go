package mem

import "testing"

// TestAllocZeroed verifies a fresh cell reads as the zero value.
func TestAllocZeroed(t *testing.T) {
	p := Alloc[int64]()
	if p == nil {
		t.Fatal("Alloc returned nil")
	}
	if *p != 0 {
		t.Errorf("fresh cell = %d, want 0", *p)
	}

	s := Alloc[struct {
		A int
		B string
	}]()
	if s.A != 0 || s.B != "" {
		t.Errorf("fresh struct cell = %+v, want zero value", *s)
	}
}

// TestAddr verifies address derivation and the nil case.
func TestAddr(t *testing.T) {
	if got := Addr[int](nil); got != 0 {
		t.Errorf("Addr(nil) = %#x, want 0", got)
	}

	p := Alloc[int]()
	if got := Addr(p); got == 0 {
		t.Error("Addr(live cell) = 0, want non-zero")
	}

	// The same cell must always report the same address.
	if Addr(p) != Addr(p) {
		t.Error("Addr not stable for the same cell")
	}

	q := Alloc[int]()
	if Addr(p) == Addr(q) {
		t.Error("two distinct cells share an address")
	}
}

// TestBytes verifies the byte view aliases the cell.
func TestBytes(t *testing.T) {
	if Bytes[uint32](nil) != nil {
		t.Error("Bytes(nil) != nil")
	}

	p := Alloc[uint32]()
	b := Bytes(p)
	if len(b) != 4 {
		t.Fatalf("len(Bytes[uint32]) = %d, want 4", len(b))
	}

	*p = 0x01020304
	// Mutation through the typed pointer must be visible in the view.
	sum := int(b[0]) + int(b[1]) + int(b[2]) + int(b[3])
	if sum != 1+2+3+4 {
		t.Errorf("byte view out of sync with cell: % x", b)
	}
}

// TestFingerprint verifies content hashing semantics.
func TestFingerprint(t *testing.T) {
	if got := Fingerprint[int](nil); got != 0 {
		t.Errorf("Fingerprint(nil) = %d, want 0", got)
	}

	a := Alloc[uint64]()
	b := Alloc[uint64]()
	*a = 42
	*b = 42
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equal contents produced different fingerprints")
	}

	*b = 43
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different contents produced the same fingerprint")
	}
}

// BenchmarkFingerprint measures hashing cost for a small referent.
func BenchmarkFingerprint(b *testing.B) {
	p := Alloc[[4]uint64]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Fingerprint(p)
	}
}
