// Package mem concentrates the raw-memory operations behind the pointer
// handles: cell allocation, provenance addresses, byte views, and content
// fingerprints.
//
// Everything unsafe lives here so the handle types above stay readable.
// The operations are deliberately tiny:
//   - Alloc[T] reserves one zeroed cell for a T
//   - SizeOf[T] reports the cell size
//   - Addr derives the integer identity of a cell (0 for nil)
//   - Bytes exposes the referent as raw bytes
//   - Fingerprint hashes the referent's bytes (FNV-1a)
//
// There is no Free: a cell is released by dropping every reference to it,
// at which point the runtime reclaims the memory. The handle layer models
// explicit deallocation by forgetting its pointer.
package mem

import (
	"hash/fnv"
	"unsafe"
)

// Alloc reserves a zeroed cell sized and aligned for T.
//
// The Go allocator always returns zeroed memory, which matches the
// alloc-zeroed contract the handles rely on: an allocated-but-unwritten
// cell reads as the zero value of T.
func Alloc[T any]() *T {
	return new(T)
}

// SizeOf returns the size in bytes of one cell of T.
func SizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Addr returns the provenance address of a cell, 0 for nil.
//
// The address is used for identity comparisons and diagnostics only;
// the handle keeps the typed pointer alongside it, so the referent stays
// reachable no matter what callers do with the integer.
//
//go:nosplit
func Addr[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}

// Bytes exposes the referent of p as its raw bytes.
//
// The view aliases the cell: mutations through p are visible in the slice
// and vice versa. Callers must not retain the slice past the cell's
// lifetime. Returns nil for a nil pointer.
func Bytes[T any](p *T) []byte {
	if p == nil {
		return nil
	}
	size := int(unsafe.Sizeof(*p))
	if size == 0 {
		return nil
	}
	//nolint:gosec // G103: byte view over a live, typed allocation.
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), size)
}

// Fingerprint computes the FNV-1a hash of the referent's bytes.
//
// Two cells holding the same bit pattern produce the same fingerprint,
// which is what the handles' hashing contract requires. A nil pointer
// fingerprints to 0.
func Fingerprint[T any](p *T) uint64 {
	b := Bytes(p)
	if b == nil {
		return 0
	}

	h := fnv.New64a()
	_, _ = h.Write(b) // Write never returns an error for hash.Hash.
	return h.Sum64()
}
