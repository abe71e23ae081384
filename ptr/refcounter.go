package ptr

import (
	"fmt"

	"github.com/kolkov/uniqueptr/internal/ptr/mem"
)

// RefCounter is a shared reference count backed by a single heap cell.
//
// Copies of a RefCounter made through Clone (or plain struct assignment)
// share the same backing cell, so an increment performed through one handle
// is observable through every other handle attached to the same cell. The
// count itself is bookkeeping only: nothing prevents a caller from
// incrementing or decrementing it out of step with the handles that exist.
//
// The zero value is a null counter: unallocated, reading 0. Mutating
// operations allocate the backing cell on first use.
//
// RefCounter is not safe for concurrent use. Handles are single-threaded
// by contract; see the package documentation.
type RefCounter struct {
	cell *uint64
}

// NullRefCounter returns an unallocated counter. It reads as 0 and has no
// backing cell until the first mutating operation.
func NullRefCounter() RefCounter {
	return RefCounter{}
}

// NewRefCounter returns a counter allocated and seeded with the value 1.
func NewRefCounter() RefCounter {
	c := NullRefCounter()
	c.Incr()
	return c
}

// IsNull reports whether the counter has no backing cell.
func (c *RefCounter) IsNull() bool {
	return c.cell == nil
}

// Addr returns the address of the backing cell, or 0 for a null counter.
func (c *RefCounter) Addr() uintptr {
	return mem.Addr(c.cell)
}

// Read returns the current count. A null counter reads as 0; there is no
// error path.
func (c *RefCounter) Read() uint64 {
	if c.cell == nil {
		return 0
	}
	return *c.cell
}

// Write stores count into the backing cell, allocating it first if absent.
func (c *RefCounter) Write(count uint64) {
	c.alloc()
	*c.cell = count
}

// Incr increments the counter by one, allocating the cell if absent.
func (c *RefCounter) Incr() {
	c.IncrBy(1)
}

// IncrBy increments the counter by n, allocating the cell if absent.
func (c *RefCounter) IncrBy(n uint64) {
	c.Write(c.Read() + n)
}

// Decr decrements the counter by one. Saturates at 0.
func (c *RefCounter) Decr() {
	c.DecrBy(1)
}

// DecrBy decrements the counter by n. A decrement larger than the current
// count leaves the count unchanged rather than underflowing.
func (c *RefCounter) DecrBy(n uint64) {
	count := c.Read()
	if count >= n {
		c.Write(count - n)
	}
}

// Reset writes 1 into the counter, restoring the state produced by
// NewRefCounter. Allocates the cell if absent.
func (c *RefCounter) Reset() {
	c.Write(1)
}

// Drain relinquishes the backing cell. The counter becomes null and reads
// as 0; handles that shared the cell keep their own attachment and are
// unaffected. The cell itself is reclaimed by the garbage collector once
// the last handle lets go of it.
func (c *RefCounter) Drain() {
	c.cell = nil
}

// Clone returns a counter attached to the same backing cell. Cloning does
// not change the count; only explicit Incr/Decr calls do.
func (c *RefCounter) Clone() RefCounter {
	return RefCounter{cell: c.cell}
}

// Equal reports whether both counters currently read the same count,
// regardless of whether they share a cell.
func (c *RefCounter) Equal(other *RefCounter) bool {
	return c.Read() == other.Read()
}

// String renders the counter with its cell address and current count.
func (c *RefCounter) String() string {
	return fmt.Sprintf("RefCounter@%016x[data=%d]", c.Addr(), c.Read())
}

// alloc reserves the backing cell seeded with 1. No-op if already
// allocated.
func (c *RefCounter) alloc() {
	if c.cell != nil {
		return
	}
	c.cell = mem.Alloc[uint64]()
	*c.cell = 1
}
