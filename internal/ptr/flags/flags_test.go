package flags

import "testing"

// TestBitValues pins the flag bits to the original runtime constants so
// diagnostic dumps stay comparable across versions.
func TestBitValues(t *testing.T) {
	tests := []struct {
		name string
		flag Set
		want uint8
	}{
		{name: "alias copy", flag: AliasCopy, want: 0b0001},
		{name: "allocated", flag: Allocated, want: 0b0010},
		{name: "written", flag: Written, want: 0b0100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if uint8(tt.flag) != tt.want {
				t.Errorf("flag %s = 0b%04b, want 0b%04b", tt.name, uint8(tt.flag), tt.want)
			}
		})
	}
}

// TestHasAddRemove tests the basic bit operations.
func TestHasAddRemove(t *testing.T) {
	var s Set

	if s.Has(Allocated) {
		t.Error("zero Set reports Allocated")
	}

	s.Add(Allocated)
	if !s.Has(Allocated) {
		t.Error("Set does not report Allocated after Add")
	}
	if s.Has(Written) {
		t.Error("Set reports Written after adding only Allocated")
	}

	s.Add(Written | AliasCopy)
	if !s.Has(Allocated | Written | AliasCopy) {
		t.Errorf("Set = %v, want all three bits", s)
	}

	s.Remove(AliasCopy)
	if s.Has(AliasCopy) {
		t.Error("Set reports AliasCopy after Remove")
	}
	if !s.Has(Allocated | Written) {
		t.Error("Remove(AliasCopy) disturbed other bits")
	}

	s.Clear()
	if s != 0 {
		t.Errorf("Set = %v after Clear, want 0", s)
	}
}

// TestHasRequiresAllBits verifies Has checks the full mask, not any bit.
func TestHasRequiresAllBits(t *testing.T) {
	s := Allocated
	if s.Has(Allocated | Written) {
		t.Error("Has(Allocated|Written) = true with only Allocated set")
	}
}

// TestString tests the debug representation.
func TestString(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want string
	}{
		{name: "empty", set: 0, want: "none"},
		{name: "allocated only", set: Allocated, want: "alloc"},
		{name: "written only", set: Written, want: "written"},
		{name: "copy only", set: AliasCopy, want: "copy"},
		{name: "owner holding a value", set: Allocated | Written, want: "alloc|written"},
		{name: "counted copy of a value", set: Allocated | Written | AliasCopy, want: "alloc|written|copy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.String(); got != tt.want {
				t.Errorf("Set(%04b).String() = %q, want %q", uint8(tt.set), got, tt.want)
			}
		})
	}
}
