package ptr

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/kolkov/uniqueptr/internal/ptr/allocdepot"
	"github.com/kolkov/uniqueptr/internal/ptr/mem"
)

// SmartPointer is the counter-less sibling of UniquePointer: a handle to a
// single heap value with allocated/written bookkeeping but no shared
// reference count and no alias-copy flag. Every copy, whether made by
// Clone or by plain assignment, is an independent, bitwise-identical view
// of the same backing memory with its own bookkeeping.
//
// There is no decrement-then-free protocol: Dealloc frees immediately
// whenever the handle believes itself allocated. The caller manages
// sharing discipline externally and must ensure only one copy frees; the
// payoff is skipping the counter's bookkeeping cost entirely.
//
// The zero value is a null handle. SmartPointer is not safe for
// concurrent use.
type SmartPointer[T any] struct {
	addr    uintptr
	ptr     *T
	written bool
}

// NullSmartPointer returns a null handle.
func NullSmartPointer[T any]() SmartPointer[T] {
	return SmartPointer[T]{}
}

// SmartPointerFrom allocates a handle and writes value into it.
func SmartPointerFrom[T any](value T) SmartPointer[T] {
	sp := NullSmartPointer[T]()
	sp.Write(value)
	return sp
}

// SmartPointerFromRef allocates a handle and copies the referent of src
// into it. The source and the handle hold independent copies afterwards.
func SmartPointerFromRef[T any](src *T) SmartPointer[T] {
	sp := NullSmartPointer[T]()
	sp.WriteRef(src)
	return sp
}

// SmartPointerOver returns a view over data without allocating: the
// handle points directly at the caller's value and reports itself
// written. Dealloc on such a view drops the handle's pointer but cannot
// reclaim memory the caller still owns.
func SmartPointerOver[T any](data *T) SmartPointer[T] {
	return SmartPointer[T]{
		addr:    mem.Addr(data),
		ptr:     data,
		written: true,
	}
}

// Addr returns the address of the backing memory, or 0 when null.
func (s *SmartPointer[T]) Addr() uintptr {
	return s.addr
}

// IsNull reports whether the handle points at nothing.
func (s *SmartPointer[T]) IsNull() bool {
	return s.ptr == nil
}

// IsWritten reports whether a value has been placed into the backing
// memory.
func (s *SmartPointer[T]) IsWritten() bool {
	return !s.IsNull() && s.written
}

// IsAllocated reports whether the handle holds live backing memory. For
// SmartPointer this is derived from the written state: memory obtained
// lazily by Swap but never written does not count as allocated, and a
// later Write replaces it.
func (s *SmartPointer[T]) IsAllocated() bool {
	return !s.IsNull() && s.IsWritten()
}

// Write places value into the backing memory, allocating if needed, and
// marks the handle written.
func (s *SmartPointer[T]) Write(value T) {
	s.alloc()
	*s.ptr = value
	s.written = true
}

// WriteRef copies the referent of src into the backing memory, allocating
// if needed, and marks the handle written.
func (s *SmartPointer[T]) WriteRef(src *T) {
	s.alloc()
	*s.ptr = *src
	s.written = true
}

// Swap exchanges the backing memory contents of two handles, allocating
// either null side lazily. Written bookkeeping stays put on both sides. A
// swap of two null handles is a no-op.
func (s *SmartPointer[T]) Swap(other *SmartPointer[T]) {
	if s.IsNull() && other.IsNull() {
		return
	}
	if s.ptr == nil {
		s.alloc()
	}
	if other.ptr == nil {
		other.alloc()
	}
	*s.ptr, *other.ptr = *other.ptr, *s.ptr
}

// Read returns a copy of the stored value, or a *PreconditionError when
// the handle is null or unwritten.
func (s *SmartPointer[T]) Read() (T, error) {
	var zero T
	if s.IsNull() {
		return zero, newPreconditionError("Read", s.String(),
			"call Write before reading, or use TryRead to probe the handle", ErrNullPointer)
	}
	if !s.IsWritten() {
		return zero, newPreconditionError("Read", s.String(),
			"call Write before reading, or use TryRead to probe the handle", ErrNotWritten)
	}
	return *s.ptr, nil
}

// TryRead returns a copy of the stored value and true, or the zero value
// and false when the handle is null or unwritten.
func (s *SmartPointer[T]) TryRead() (T, bool) {
	var zero T
	if !s.IsWritten() {
		return zero, false
	}
	return *s.ptr, true
}

// Ref returns a borrowed view of the stored value; ok is false when the
// handle is null or unwritten.
func (s *SmartPointer[T]) Ref() (*T, bool) {
	if !s.IsWritten() {
		return nil, false
	}
	return s.ptr, true
}

// MustRef returns a borrowed view of the backing memory, written or not.
// It panics with a *PreconditionError if the handle is null.
func (s *SmartPointer[T]) MustRef() *T {
	if s.IsNull() {
		panic(newPreconditionError("MustRef", s.String(),
			"check IsNull, or use Ref for a non-panicking view", ErrNullPointer))
	}
	return s.ptr
}

// Clone returns an independent handle over the same backing memory with
// the written state preserved. Plain struct assignment is equivalent;
// Clone exists for symmetry with UniquePointer.
func (s *SmartPointer[T]) Clone() SmartPointer[T] {
	clone := NullSmartPointer[T]()
	clone.setPtr(s.ptr)
	clone.written = s.written
	return clone
}

// Dealloc frees the backing memory immediately if the handle believes
// itself allocated, resetting the handle to null. There is no counter to
// consult: with several copies over one allocation, making sure only one
// of them deallocs is the caller's obligation.
func (s *SmartPointer[T]) Dealloc() {
	if !s.IsAllocated() {
		return
	}
	if allocdepot.Enabled() {
		allocdepot.Untrack(s.addr)
	}
	s.setPtr(nil)
	s.written = false
}

// Equal reports whether two handles are equal: same address, both null,
// or equal referents once both are known non-null.
func (s *SmartPointer[T]) Equal(other *SmartPointer[T]) bool {
	if s.Addr() == other.Addr() {
		return true
	}
	if s.IsNull() {
		return other.IsNull()
	}
	if other.IsNull() {
		return false
	}
	return reflect.DeepEqual(*s.ptr, *other.ptr)
}

// Hash64 returns the FNV-1a fingerprint of the backing value's raw
// bytes, or 0 for a null handle.
func (s *SmartPointer[T]) Hash64() uint64 {
	return mem.Fingerprint(s.ptr)
}

// String renders the handle for diagnostics.
func (s *SmartPointer[T]) String() string {
	if !s.IsNull() {
		return fmt.Sprintf("SmartPointer%016x[src=%v]", s.Addr(), *s.ptr)
	}
	return fmt.Sprintf("SmartPointer%016x[written=%t]", s.Addr(), s.written)
}

// CompareSmart orders two handles the way Compare orders UniquePointers:
// null sorts first, shared addresses are equal, otherwise the referents
// decide.
func CompareSmart[T cmp.Ordered](a, b *SmartPointer[T]) int {
	if a.IsNull() {
		if b.IsNull() {
			return 0
		}
		return -1
	}
	if b.IsNull() {
		return +1
	}
	if a.Addr() == b.Addr() {
		return 0
	}
	return cmp.Compare(*a.ptr, *b.ptr)
}

// alloc reserves zeroed backing memory. The gate is IsAllocated, not the
// raw pointer: memory held by a swapped-into handle that was never
// written gets replaced by a fresh allocation here.
func (s *SmartPointer[T]) alloc() {
	if s.IsAllocated() {
		return
	}
	p := mem.Alloc[T]()
	s.setPtr(p)
	if allocdepot.Enabled() {
		allocdepot.Track(s.addr, mem.SizeOf[T](), fmt.Sprintf("%T", *p))
	}
}

// setPtr points the handle at p and keeps the cached address in step.
func (s *SmartPointer[T]) setPtr(p *T) {
	s.addr = mem.Addr(p)
	s.ptr = p
}
