// Package ptr - Allocation tracking API for leak diagnostics.
//
// Tracking is off by default and costs nothing until enabled. When
// enabled, every allocation made by a handle is recorded and every
// entitled free removes its record; what remains is the set of
// allocations no handle ever released. Since handles manage memory
// manually on top of a collected runtime, a leaked record means a handle
// discipline bug, not lost memory.
package ptr

import (
	"io"

	"github.com/kolkov/uniqueptr/internal/ptr/allocdepot"
)

// Allocation describes one live handle allocation.
type Allocation struct {
	Seq  uint64  // allocation order, starting at 1
	Addr uintptr // backing memory address
	Size uintptr // size of the allocation in bytes
	Type string  // Go type name of the allocated value
}

// EnableLeakTracking turns allocation tracking on. Allocations made while
// tracking was off are not discovered retroactively.
func EnableLeakTracking() {
	allocdepot.Enable()
}

// DisableLeakTracking turns allocation tracking off. Records already
// collected are kept until ResetLeakTracking.
func DisableLeakTracking() {
	allocdepot.Disable()
}

// LeakTrackingEnabled reports whether allocations are being recorded.
func LeakTrackingEnabled() bool {
	return allocdepot.Enabled()
}

// ResetLeakTracking discards all collected records and restarts the
// allocation sequence.
func ResetLeakTracking() {
	allocdepot.Reset()
}

// LiveCount returns the number of tracked allocations not yet freed.
func LiveCount() int {
	return allocdepot.Len()
}

// LiveAllocations returns the tracked allocations not yet freed, ordered
// by address.
func LiveAllocations() []Allocation {
	records := allocdepot.Live()
	live := make([]Allocation, 0, len(records))
	for _, r := range records {
		live = append(live, Allocation{
			Seq:  r.Seq,
			Addr: r.Addr,
			Size: r.Size,
			Type: r.Type,
		})
	}
	return live
}

// WriteLeakReport writes a human-readable report of live allocations
// to w.
func WriteLeakReport(w io.Writer) {
	allocdepot.Report(w)
}

// WriteLeakJSON writes the live allocations to w as JSON.
func WriteLeakJSON(w io.Writer) error {
	return allocdepot.WriteJSON(w)
}
