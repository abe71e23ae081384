//go:build ignore
// +build ignore

// This tool prints the memory layout of the handle types.
// Run with: go run tools/layout.go
package main

import (
	"fmt"
	"unsafe"
)

// Mirrors of the handle structs in ptr/. Field order MUST match the
// real types; re-run after changing any of them.
//
// The typed pointer is what keeps the referent reachable; addr is the
// provenance integer kept alongside it for identity and diagnostics.
type uniquePointer struct {
	addr  uintptr        // offset 0
	ptr   unsafe.Pointer // offset 8 (scanned by the GC)
	refs  refCounter     // offset 16 (scanned by the GC)
	flags uint8          // offset 24, 7 bytes padding
}

type smartPointer struct {
	addr    uintptr        // offset 0
	ptr     unsafe.Pointer // offset 8 (scanned by the GC)
	written bool           // offset 16, 7 bytes padding
}

type refCounter struct {
	cell *uint64 // offset 0 (scanned by the GC)
}

func main() {
	var u uniquePointer
	var s smartPointer
	var c refCounter

	fmt.Printf("UniquePointer[T]: size %d, align %d\n", unsafe.Sizeof(u), unsafe.Alignof(u))
	fmt.Printf("  addr    offset %2d  size %d\n", unsafe.Offsetof(u.addr), unsafe.Sizeof(u.addr))
	fmt.Printf("  ptr     offset %2d  size %d\n", unsafe.Offsetof(u.ptr), unsafe.Sizeof(u.ptr))
	fmt.Printf("  refs    offset %2d  size %d\n", unsafe.Offsetof(u.refs), unsafe.Sizeof(u.refs))
	fmt.Printf("  flags   offset %2d  size %d\n", unsafe.Offsetof(u.flags), unsafe.Sizeof(u.flags))

	fmt.Printf("\nSmartPointer[T]: size %d, align %d\n", unsafe.Sizeof(s), unsafe.Alignof(s))
	fmt.Printf("  addr    offset %2d  size %d\n", unsafe.Offsetof(s.addr), unsafe.Sizeof(s.addr))
	fmt.Printf("  ptr     offset %2d  size %d\n", unsafe.Offsetof(s.ptr), unsafe.Sizeof(s.ptr))
	fmt.Printf("  written offset %2d  size %d\n", unsafe.Offsetof(s.written), unsafe.Sizeof(s.written))

	fmt.Printf("\nRefCounter: size %d, align %d\n", unsafe.Sizeof(c), unsafe.Alignof(c))
	fmt.Printf("  cell    offset %2d  size %d\n", unsafe.Offsetof(c.cell), unsafe.Sizeof(c.cell))

	fmt.Printf("\nNote: a concrete T changes nothing above; the handle stores *T,\n")
	fmt.Printf("never T itself, so every instantiation has the same layout.\n")
}
