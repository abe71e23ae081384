package ptr

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/fulldump/biff"
)

func TestSmartPointerNull(t *testing.T) {
	sp := NullSmartPointer[string]()

	AssertTrue(sp.IsNull())
	AssertEqual(sp.Addr(), uintptr(0))
	AssertFalse(sp.IsWritten())
	AssertFalse(sp.IsAllocated())

	_, ok := sp.Ref()
	AssertFalse(ok)

	var zero SmartPointer[string]
	AssertTrue(zero.IsNull())
}

func TestSmartPointerWrite(t *testing.T) {
	sp := NullSmartPointer[string]()
	sp.Write("hello")

	AssertFalse(sp.IsNull())
	AssertTrue(sp.IsAllocated())
	AssertTrue(sp.IsWritten())
	AssertTrue(sp.Addr() != 0)

	v, err := sp.Read()
	AssertNil(err)
	AssertEqual(v, "hello")
}

func TestSmartPointerFrom(t *testing.T) {
	sp := SmartPointerFrom(42)
	v, err := sp.Read()
	AssertNil(err)
	AssertEqual(v, 42)
}

func TestSmartPointerFromRefSnapshots(t *testing.T) {
	src := "original"
	sp := SmartPointerFromRef(&src)

	src = "mutated"
	v, err := sp.Read()
	AssertNil(err)
	AssertEqual(v, "original")
}

func TestSmartPointerOver(t *testing.T) {
	value := 7
	sp := SmartPointerOver(&value)

	AssertTrue(sp.IsWritten())
	AssertTrue(sp.Addr() != 0) // points at the caller's value

	value = 8
	v, err := sp.Read()
	AssertNil(err)
	AssertEqual(v, 8)
}

func TestSmartPointerCopiesShareMemory(t *testing.T) {
	sp := SmartPointerFrom("before")
	clone := sp.Clone()
	assigned := sp // plain assignment is the same kind of copy

	AssertEqual(clone.Addr(), sp.Addr())
	AssertEqual(assigned.Addr(), sp.Addr())
	AssertTrue(clone.IsWritten())

	sp.Write("after")

	v, err := clone.Read()
	AssertNil(err)
	AssertEqual(v, "after")

	v, err = assigned.Read()
	AssertNil(err)
	AssertEqual(v, "after")
}

func TestSmartPointerDeallocFreesImmediately(t *testing.T) {
	sp := SmartPointerFrom(1)
	copyHandle := sp.Clone()

	sp.Dealloc()

	AssertTrue(sp.IsNull())
	AssertFalse(sp.IsWritten())

	// The copy keeps its own bookkeeping and its own view: ensuring only
	// one copy deallocs is the caller's discipline, not the handle's.
	AssertFalse(copyHandle.IsNull())
	v, err := copyHandle.Read()
	AssertNil(err)
	AssertEqual(v, 1)
}

func TestSmartPointerDeallocUnwrittenIsNoop(t *testing.T) {
	null := NullSmartPointer[int]()
	null.Dealloc()
	AssertTrue(null.IsNull())

	// A handle that holds swap-granted memory it never wrote does not
	// believe itself allocated, so Dealloc leaves it alone.
	a := NullSmartPointer[int]()
	b := SmartPointerFrom(5)
	a.Swap(&b)
	AssertFalse(a.IsNull())
	AssertFalse(a.IsAllocated())
	a.Dealloc()
	AssertFalse(a.IsNull())
}

func TestSmartPointerSwap(t *testing.T) {
	a := SmartPointerFrom("left")
	b := SmartPointerFrom("right")

	a.Swap(&b)
	va, _ := a.Read()
	vb, _ := b.Read()
	AssertEqual(va, "right")
	AssertEqual(vb, "left")

	a.Swap(&b)
	va, _ = a.Read()
	vb, _ = b.Read()
	AssertEqual(va, "left")
	AssertEqual(vb, "right")
}

func TestSmartPointerWriteAfterSwapReallocates(t *testing.T) {
	a := NullSmartPointer[int]()
	b := SmartPointerFrom(9)
	a.Swap(&b)

	// a holds memory but never wrote it, so the allocation gate treats it
	// as unallocated and the next Write replaces the backing memory.
	swapAddr := a.Addr()
	AssertTrue(swapAddr != 0)
	AssertFalse(a.IsWritten())

	a.Write(10)
	AssertTrue(a.IsWritten())
	AssertNotEqual(a.Addr(), swapAddr)

	v, err := a.Read()
	AssertNil(err)
	AssertEqual(v, 10)
}

func TestSmartPointerReadErrors(t *testing.T) {
	null := NullSmartPointer[string]()
	_, err := null.Read()
	AssertTrue(errors.Is(err, ErrNullPointer))

	var pe *PreconditionError
	AssertTrue(errors.As(err, &pe))
	AssertEqual(pe.Op, "Read")

	_, ok := null.TryRead()
	AssertFalse(ok)
}

func TestSmartPointerMustRefPanicsOnNull(t *testing.T) {
	defer func() {
		r := recover()
		AssertNotNil(r)
		pe, isPrecondition := r.(*PreconditionError)
		AssertTrue(isPrecondition)
		AssertTrue(errors.Is(pe, ErrNullPointer))
	}()

	null := NullSmartPointer[int]()
	null.MustRef()
}

func TestSmartPointerEqual(t *testing.T) {
	a := SmartPointerFrom("same")
	b := SmartPointerFrom("same")
	AssertTrue(a.Equal(&b))

	clone := a.Clone()
	AssertTrue(a.Equal(&clone)) // address fast path

	c := SmartPointerFrom("other")
	AssertFalse(a.Equal(&c))

	n1 := NullSmartPointer[string]()
	n2 := NullSmartPointer[string]()
	AssertTrue(n1.Equal(&n2))
	AssertFalse(a.Equal(&n1))
}

func TestSmartPointerCompare(t *testing.T) {
	a := SmartPointerFrom(1)
	b := SmartPointerFrom(2)
	AssertEqual(CompareSmart(&a, &b), -1)
	AssertEqual(CompareSmart(&b, &a), 1)

	clone := a.Clone()
	AssertEqual(CompareSmart(&a, &clone), 0)

	null := NullSmartPointer[int]()
	AssertEqual(CompareSmart(&null, &a), -1)
	AssertEqual(CompareSmart(&a, &null), 1)
}

func TestSmartPointerHash64(t *testing.T) {
	a := SmartPointerFrom(uint32(77))
	b := SmartPointerFrom(uint32(77))
	AssertEqual(a.Hash64(), b.Hash64())

	null := NullSmartPointer[uint32]()
	AssertEqual(null.Hash64(), uint64(0))
}

func TestSmartPointerString(t *testing.T) {
	null := NullSmartPointer[int]()
	AssertEqual(null.String(), "SmartPointer0000000000000000[written=false]")

	sp := SmartPointerFrom(42)
	AssertEqual(sp.String(), fmt.Sprintf("SmartPointer%016x[src=42]", sp.Addr()))
}
