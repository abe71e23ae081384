// Package ptr provides manually-managed, reference-counted pointer handles
// for building self-referential data structures in pure Go.
//
// Go's pointers and garbage collector make most data structures trivial,
// but they hide the ownership story: nothing in the type system says which
// of several *Node fields is responsible for a node's lifetime. This
// package makes ownership explicit. A [UniquePointer] owns one heap value,
// counts the alias handles looking at it through a [RefCounter], and only
// releases the value when its bookkeeping says no holder remains. An
// explicit model like this is what lets a tree node hold a handle to its
// parent while the parent holds handles to its children without anyone
// freeing the other's memory out from under them.
//
// # Quick Start
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/kolkov/uniqueptr/ptr"
//	)
//
//	func main() {
//		p := ptr.From(42)
//		defer p.Dealloc(true)
//
//		q := p.Clone() // alias handle, count goes to 2
//		defer q.Dealloc(true)
//
//		v, err := q.Read()
//		if err != nil {
//			panic(err)
//		}
//		fmt.Println(v) // 42
//	}
//
// # API Overview
//
// The package provides:
//   - Owning handles: [Null], [From], [FromRef], [UniquePointer]
//   - Alias handles over owned memory: [ReadOnly], [CopyFromRef],
//     [UniquePointer.Clone], [UniquePointer.Propagate]
//   - Counter-less handles: [SmartPointer], [NullSmartPointer],
//     [SmartPointerFrom], [SmartPointerOver]
//   - Shared counting: [RefCounter]
//   - Leak diagnostics: [EnableLeakTracking], [WriteLeakReport],
//     [LiveAllocations]
//   - Version information: [GetInfo], [Version], [Compatible]
//
// # Ownership Model
//
// A handle moves through three states:
//
//	Null → Allocated → Written
//
// with an orthogonal alias-copy bit stamped at clone time. The rules:
//
//   - [UniquePointer.Clone] shares the counter, increments it, and marks
//     the result an alias copy. Alias copies read, compare and hash like
//     the original but never free memory.
//   - [UniquePointer.Dealloc] with soft=true decrements the counter while
//     it is above zero; the free happens only once the counter is spent.
//     With soft=false it frees immediately, for callers that have proven
//     exclusivity some other way.
//   - [UniquePointer.Propagate] clones without the alias-copy bit. The
//     result is a second handle entitled to free the shared allocation;
//     keeping that from happening twice is the caller's obligation.
//
// Freeing, here, means the handle forgets its pointer and counter cell so
// the garbage collector can reclaim them. The bookkeeping behaves exactly
// as if the memory were freed (reads fail, the flags and address reset)
// while the runtime keeps memory safety even when handle discipline
// slips.
//
// # Concurrency
//
// Handles, counters and the leak-tracking depot are single-threaded by
// contract: no operation may be invoked from more than one goroutine
// concurrently. There are no locks or atomics inside, and none of the
// operations block. The package is built for exclusive, sequential access
// to any given allocation and its counter.
//
// # Leak Diagnostics
//
// With tracking enabled, every handle allocation is recorded and every
// entitled free removes its record; the remainder is the set of
// allocations no handle released:
//
//	ptr.EnableLeakTracking()
//	defer ptr.DisableLeakTracking()
//
//	p := ptr.From("leaked")
//	_ = p // never deallocated
//
//	ptr.WriteLeakReport(os.Stderr)
//
// # Examples
//
// See package-level examples in the documentation:
//   - [Example] - Write, clone and release a handle
//   - [Example_leakReport] - Finding handles that never released
//
// # Links
//
// Project repository:
// https://github.com/kolkov/uniqueptr
//
// Documentation:
// https://pkg.go.dev/github.com/kolkov/uniqueptr/ptr
package ptr
