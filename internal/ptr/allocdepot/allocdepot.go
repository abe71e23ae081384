// Package allocdepot implements a live-allocation registry for the pointer
// handles.
//
// The depot records every backing cell the handle layer allocates and
// forgets it again when the cell is freed. Whatever is still registered at
// inspection time is, by definition, memory the program never released:
// the registry doubles as a leak detector for manually-managed handles.
//
// Design:
//   - Disabled by default; tracking costs nothing until enabled
//   - Records keyed by provenance address in an ordered B-tree, so leak
//     dumps come out in stable address order
//   - Sequence numbers preserve allocation order across the report
//   - No synchronization: the handle layer is single-threaded by contract,
//     and the depot inherits that contract
//
// Usage:
//
//	allocdepot.Enable()
//	defer allocdepot.Disable()
//	// ... exercise handles ...
//	allocdepot.Report(os.Stderr)
package allocdepot

import (
	"fmt"
	"io"

	json "github.com/go-json-experiment/json"
	"github.com/google/btree"
)

// Record describes one live backing cell.
type Record struct {
	// Seq is the allocation sequence number, starting at 1 when tracking
	// is enabled. It survives in reports so leaks can be matched to the
	// order the program created them in.
	Seq uint64

	// Addr is the provenance address of the cell.
	Addr uintptr

	// Size is the cell size in bytes.
	Size uintptr

	// Type is the referent's Go type name.
	Type string
}

// btreeDegree matches the fan-out used by the index trees this registry
// is modeled on; the registry is small, the value is not critical.
const btreeDegree = 32

var (
	enabled bool
	seq     uint64
	live    = btree.NewG(btreeDegree, func(a, b Record) bool {
		return a.Addr < b.Addr
	})
)

// Enable turns allocation tracking on. Cells allocated while the depot is
// disabled are invisible to it; enable before the first allocation of
// interest.
func Enable() {
	enabled = true
}

// Disable turns allocation tracking off. Already-recorded cells remain in
// the registry until untracked or Reset.
func Disable() {
	enabled = false
}

// Enabled reports whether the depot is currently recording.
//
//go:nosplit
func Enabled() bool {
	return enabled
}

// Reset drops every record and restarts the sequence numbering.
func Reset() {
	seq = 0
	live.Clear(false)
}

// Track registers a live cell. No-op while the depot is disabled.
// Re-tracking an address replaces the previous record (the old cell must
// have been freed for its address to be reused).
func Track(addr, size uintptr, typeName string) {
	if !enabled || addr == 0 {
		return
	}
	seq++
	live.ReplaceOrInsert(Record{
		Seq:  seq,
		Addr: addr,
		Size: size,
		Type: typeName,
	})
}

// Untrack forgets a cell. Safe to call for addresses that were never
// tracked (tracking may have been enabled mid-lifecycle).
func Untrack(addr uintptr) {
	if addr == 0 {
		return
	}
	live.Delete(Record{Addr: addr})
}

// Len returns the number of live records.
func Len() int {
	return live.Len()
}

// Live returns the live records in ascending address order.
func Live() []Record {
	out := make([]Record, 0, live.Len())
	live.Ascend(func(rec Record) bool {
		out = append(out, rec)
		return true
	})
	return out
}

// Report writes a human-readable dump of the live set.
//
// Example output:
//
//	==================
//	WARNING: LIVE ALLOCATIONS: 2
//	#3 int (8 bytes) at 0x000000c0000180a0
//	#7 string (16 bytes) at 0x000000c0000181c0
//	==================
//
// An empty registry reports a single "no live allocations" line.
//
//nolint:errcheck // report formatting writes to a diagnostic sink
func Report(w io.Writer) {
	if live.Len() == 0 {
		fmt.Fprintf(w, "no live allocations\n")
		return
	}

	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "WARNING: LIVE ALLOCATIONS: %d\n", live.Len())
	live.Ascend(func(rec Record) bool {
		fmt.Fprintf(w, "#%d %s (%d bytes) at 0x%016x\n", rec.Seq, rec.Type, rec.Size, uint64(rec.Addr))
		return true
	})
	fmt.Fprintf(w, "==================\n")
}

// jsonRecord is the wire form of a Record; the address is rendered as a
// hex string so reports stay readable and diffable.
type jsonRecord struct {
	Seq  uint64 `json:"seq"`
	Addr string `json:"addr"`
	Size uint64 `json:"size"`
	Type string `json:"type"`
}

type jsonReport struct {
	Live        int          `json:"live"`
	Allocations []jsonRecord `json:"allocations"`
}

// WriteJSON writes the live set as a JSON document.
func WriteJSON(w io.Writer) error {
	report := jsonReport{
		Live:        live.Len(),
		Allocations: make([]jsonRecord, 0, live.Len()),
	}
	live.Ascend(func(rec Record) bool {
		report.Allocations = append(report.Allocations, jsonRecord{
			Seq:  rec.Seq,
			Addr: fmt.Sprintf("0x%016x", uint64(rec.Addr)),
			Size: uint64(rec.Size),
			Type: rec.Type,
		})
		return true
	})
	return json.MarshalWrite(w, report)
}
