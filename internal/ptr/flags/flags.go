// Package flags implements the bit-packed lifecycle word carried by every
// pointer handle.
//
// A handle moves through Null -> Allocated -> Written, with an orthogonal
// AliasCopy bit set when the handle was produced by cloning rather than by
// owning the allocation. The three states fit in one byte:
//   - Bit 0: AliasCopy (handle is a counted copy, must never free memory)
//   - Bit 1: Allocated (backing memory has been reserved)
//   - Bit 2: Written   (a valid value has been placed in the memory)
//
// The bit values match the on-disk constants of the original runtime so
// that diagnostic dumps stay comparable across versions.
package flags

// Set is a one-byte lifecycle flag word.
//
// Example: 0b0110 represents Allocated|Written (an owner holding a value).
type Set uint8

const (
	// AliasCopy marks a handle produced by clone. Alias copies decrement
	// the shared counter on release but never free the backing memory.
	AliasCopy Set = 1 << 0

	// Allocated marks a handle whose backing memory has been reserved.
	Allocated Set = 1 << 1

	// Written marks a handle whose backing memory holds a valid value.
	// Written implies Allocated.
	Written Set = 1 << 2
)

// Has reports whether every bit in mask is set.
//
//go:nosplit
func (s Set) Has(mask Set) bool {
	return s&mask == mask
}

// Add sets every bit in mask.
//
//go:nosplit
func (s *Set) Add(mask Set) {
	*s |= mask
}

// Remove clears every bit in mask.
//
//go:nosplit
func (s *Set) Remove(mask Set) {
	*s &^= mask
}

// Clear resets the word to the null state.
//
//go:nosplit
func (s *Set) Clear() {
	*s = 0
}

// String returns a human-readable representation of the flag word.
//
// Format: "alloc|written|copy" with unset bits omitted, "none" when empty.
// Only used for debugging output, not on hot paths.
func (s Set) String() string {
	if s == 0 {
		return "none"
	}

	// Build without fmt: this package sits below the diagnostic formatters.
	buf := make([]byte, 0, 18)
	if s.Has(Allocated) {
		buf = append(buf, "alloc"...)
	}
	if s.Has(Written) {
		if len(buf) > 0 {
			buf = append(buf, '|')
		}
		buf = append(buf, "written"...)
	}
	if s.Has(AliasCopy) {
		if len(buf) > 0 {
			buf = append(buf, '|')
		}
		buf = append(buf, "copy"...)
	}
	return string(buf)
}
