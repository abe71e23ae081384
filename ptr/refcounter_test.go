package ptr

import (
	"fmt"
	"testing"

	. "github.com/fulldump/biff"
)

func TestRefCounterIncrDecrRead(t *testing.T) {
	counter := NewRefCounter()
	AssertEqual(counter.Read(), uint64(1))

	counter.Incr()
	AssertEqual(counter.Read(), uint64(2))
	counter.Incr()
	AssertEqual(counter.Read(), uint64(3))

	// A clone shares the backing cell: increments through it are
	// observable through the source.
	clone := counter.Clone()
	clone.Incr()
	AssertEqual(counter.Read(), uint64(4))
	AssertEqual(clone.Read(), uint64(4))

	counter.Decr()
	AssertEqual(counter.Read(), uint64(3))
	counter.Decr()
	AssertEqual(counter.Read(), uint64(2))
	counter.Decr()
	AssertEqual(counter.Read(), uint64(1))
	counter.Decr()
	AssertEqual(counter.Read(), uint64(0))

	// Decrementing past zero saturates.
	counter.Decr()
	AssertEqual(counter.Read(), uint64(0))
}

func TestRefCounterIncrByDecrBy(t *testing.T) {
	counter := NewRefCounter()
	AssertEqual(counter.Read(), uint64(1))

	counter.IncrBy(2)
	AssertEqual(counter.Read(), uint64(3))
	counter.DecrBy(1)
	AssertEqual(counter.Read(), uint64(2))
	counter.DecrBy(1)
	AssertEqual(counter.Read(), uint64(1))
	counter.IncrBy(1)
	AssertEqual(counter.Read(), uint64(2))

	// A decrement larger than the count is a no-op, not an underflow.
	counter.DecrBy(10)
	AssertEqual(counter.Read(), uint64(2))
}

func TestRefCounterNull(t *testing.T) {
	counter := NullRefCounter()
	AssertTrue(counter.IsNull())
	AssertEqual(counter.Read(), uint64(0))
	AssertEqual(counter.Addr(), uintptr(0))

	// First mutation allocates the cell.
	counter.Incr()
	AssertFalse(counter.IsNull())
	AssertEqual(counter.Read(), uint64(1))
	AssertTrue(counter.Addr() != 0)
}

func TestRefCounterZeroValue(t *testing.T) {
	var counter RefCounter
	AssertTrue(counter.IsNull())
	AssertEqual(counter.Read(), uint64(0))

	counter.Write(7)
	AssertEqual(counter.Read(), uint64(7))
}

func TestRefCounterWriteOverwrites(t *testing.T) {
	counter := NewRefCounter()
	counter.Write(42)
	AssertEqual(counter.Read(), uint64(42))
	counter.Write(0)
	AssertEqual(counter.Read(), uint64(0))
	AssertFalse(counter.IsNull())
}

func TestRefCounterReset(t *testing.T) {
	counter := NewRefCounter()
	counter.IncrBy(9)
	AssertEqual(counter.Read(), uint64(10))

	counter.Reset()
	AssertEqual(counter.Read(), uint64(1))

	// Reset on a null counter allocates, same as NewRefCounter.
	fresh := NullRefCounter()
	fresh.Reset()
	AssertFalse(fresh.IsNull())
	AssertEqual(fresh.Read(), uint64(1))
}

func TestRefCounterDrainDetaches(t *testing.T) {
	counter := NewRefCounter()
	counter.IncrBy(2)
	clone := counter.Clone()
	AssertEqual(clone.Read(), uint64(3))

	// Drain detaches only the drained handle; holders that shared the
	// cell keep reading it through their own attachment.
	counter.Drain()
	AssertTrue(counter.IsNull())
	AssertEqual(counter.Read(), uint64(0))
	AssertEqual(clone.Read(), uint64(3))

	// Draining a null counter is a no-op.
	counter.Drain()
	AssertTrue(counter.IsNull())
}

func TestRefCounterCloneDoesNotChangeCount(t *testing.T) {
	counter := NewRefCounter()
	clone := counter.Clone()
	AssertEqual(counter.Read(), uint64(1))
	AssertEqual(clone.Read(), uint64(1))
	AssertEqual(clone.Addr(), counter.Addr())
}

func TestRefCounterNullCloneDiverges(t *testing.T) {
	// Cloning a counter that has no cell yet copies the nil attachment;
	// the first mutation allocates a cell for the mutated copy only.
	counter := NullRefCounter()
	clone := counter.Clone()

	clone.Incr()
	AssertEqual(clone.Read(), uint64(1))
	AssertTrue(counter.IsNull())
	AssertEqual(counter.Read(), uint64(0))

	// Allocate-then-clone is the shared-stream order.
	seeded := NewRefCounter()
	shared := seeded.Clone()
	shared.Incr()
	AssertEqual(seeded.Read(), uint64(2))
}

func TestRefCounterEqual(t *testing.T) {
	a := NewRefCounter()
	b := NewRefCounter()
	AssertTrue(a.Equal(&b)) // same count, distinct cells

	b.Incr()
	AssertFalse(a.Equal(&b))

	// A null counter equals any counter reading 0.
	null := NullRefCounter()
	zero := NullRefCounter()
	zero.Write(0)
	AssertTrue(null.Equal(&zero))
}

func TestRefCounterString(t *testing.T) {
	null := NullRefCounter()
	AssertEqual(null.String(), "RefCounter@0000000000000000[data=0]")

	counter := NewRefCounter()
	counter.IncrBy(2)
	AssertEqual(counter.String(), fmt.Sprintf("RefCounter@%016x[data=3]", counter.Addr()))
}
