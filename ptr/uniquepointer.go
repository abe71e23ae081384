package ptr

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/kolkov/uniqueptr/internal/ptr/allocdepot"
	"github.com/kolkov/uniqueptr/internal/ptr/flags"
	"github.com/kolkov/uniqueptr/internal/ptr/mem"
)

// UniquePointer is a manually-managed, reference-counted owning handle to a
// single heap value of type T.
//
// A handle moves through the states Null, Allocated and Written, with an
// orthogonal alias-copy bit set when the handle was produced by Clone. The
// reference count is shared between a handle and all of its clones; it is
// the sole signal Dealloc uses to decide whether the backing value may be
// released. Nothing enforces that the count matches the number of live
// handles; keeping them in step is the caller's contract.
//
// Handles of the same origin may form cycles (a tree node holding handles
// to children whose parent handles point back); consumers break those
// cycles with alias handles built by CopyFromRef or ReadOnly.
//
// The zero value is a null handle with an unallocated counter. Null is the
// canonical constructor: it seeds the count at 1, the state every owner
// starts from. UniquePointer is not safe for concurrent use.
type UniquePointer[T any] struct {
	addr  uintptr
	ptr   *T
	refs  RefCounter
	flags flags.Set
}

// Null returns a null handle with its reference count seeded at 1: an
// owner always starts believing it is the sole reference.
func Null[T any]() UniquePointer[T] {
	return UniquePointer[T]{
		addr:  0,
		ptr:   nil,
		refs:  NewRefCounter(),
		flags: 0,
	}
}

// From allocates a handle and writes value into it.
func From[T any](value T) UniquePointer[T] {
	up := Null[T]()
	up.Write(value)
	return up
}

// FromRef allocates a handle and copies the referent of src into it. The
// source and the handle hold independent copies afterwards.
func FromRef[T any](src *T) UniquePointer[T] {
	up := Null[T]()
	up.WriteRef(src)
	return up
}

// ReadOnly returns an alias handle over data with its own counter seeded
// at 1. Alias handles never free the memory they point at; they exist for
// iterating self-referential structures without disturbing ownership.
func ReadOnly[T any](data *T) UniquePointer[T] {
	return CopyFromRef(data, 1)
}

// CopyFromRef returns an alias handle over data whose counter is a new
// cell seeded with refs. The handle is flagged allocated, written and
// alias-copy: it reads and compares like the original but is inert to
// Dealloc's free path. Useful when T carries its own RefCounter and the
// alias must report the structure's count rather than 1.
func CopyFromRef[T any](data *T, refs uint64) UniquePointer[T] {
	counter := NullRefCounter()
	counter.Write(refs)
	up := UniquePointer[T]{
		addr: mem.Addr(data),
		ptr:  data,
		refs: counter,
	}
	up.flags.Add(flags.AliasCopy | flags.Allocated | flags.Written)
	return up
}

// aliasSeed returns a null handle pre-flagged as an alias copy. Clone
// builds on it so that the result can never free memory it shares with
// the source.
func aliasSeed[T any]() UniquePointer[T] {
	up := Null[T]()
	up.flags.Add(flags.AliasCopy)
	return up
}

// Addr returns the address of the backing allocation, or 0 when null.
func (u *UniquePointer[T]) Addr() uintptr {
	return u.addr
}

// Refs returns the current shared reference count.
func (u *UniquePointer[T]) Refs() uint64 {
	return u.refs.Read()
}

// IsNull reports whether the handle points at nothing.
func (u *UniquePointer[T]) IsNull() bool {
	return u.ptr == nil
}

// IsAllocated reports whether backing memory has been reserved. A handle
// whose pointer is null is never allocated, whatever its flags say.
func (u *UniquePointer[T]) IsAllocated() bool {
	return u.flags.Has(flags.Allocated) && !u.IsNull()
}

// IsWritten reports whether a value has been placed into the allocation.
func (u *UniquePointer[T]) IsWritten() bool {
	return u.flags.Has(flags.Written) && u.IsAllocated()
}

// IsCopy reports whether the handle is an alias copy produced by Clone,
// ReadOnly or CopyFromRef. Alias copies never free memory.
func (u *UniquePointer[T]) IsCopy() bool {
	return u.flags.Has(flags.AliasCopy)
}

// CanDealloc reports whether the handle is entitled to free its backing
// memory: allocated, not null and not an alias copy.
func (u *UniquePointer[T]) CanDealloc() bool {
	return u.flags.Has(flags.Allocated) && !u.IsCopy() && !u.IsNull()
}

// Alloc reserves zeroed backing memory for T. No-op if the handle is
// already allocated. The reference count is not touched.
func (u *UniquePointer[T]) Alloc() {
	if u.IsAllocated() {
		return
	}
	p := mem.Alloc[T]()
	u.setPtr(p)
	u.flags.Add(flags.Allocated)
	if allocdepot.Enabled() {
		allocdepot.Track(u.addr, mem.SizeOf[T](), fmt.Sprintf("%T", *p))
	}
}

// Write places value into the backing memory, allocating it first if
// needed, and marks the handle written.
func (u *UniquePointer[T]) Write(value T) {
	u.Alloc()
	*u.ptr = value
	u.flags.Add(flags.Written)
}

// WriteRef copies the referent of src into the backing memory, allocating
// it first if needed, and marks the handle written. The source keeps its
// own copy; handle and source are independent afterwards.
func (u *UniquePointer[T]) WriteRef(src *T) {
	u.Alloc()
	*u.ptr = *src
	u.flags.Add(flags.Written)
}

// Swap exchanges the backing memory contents of two handles. Either side
// is allocated lazily if null; flags and counters stay put, so a side that
// was allocated here remains unwritten even though it now holds the other
// side's value. A swap of two null handles is a no-op.
func (u *UniquePointer[T]) Swap(other *UniquePointer[T]) {
	if u.IsNull() && other.IsNull() {
		return
	}
	if u.ptr == nil {
		u.Alloc()
	}
	if other.ptr == nil {
		other.Alloc()
	}
	*u.ptr, *other.ptr = *other.ptr, *u.ptr
}

// Read returns a copy of the stored value. It fails with a
// *PreconditionError wrapping ErrNullPointer or ErrNotWritten when the
// handle has no readable value; the error carries the handle's state.
func (u *UniquePointer[T]) Read() (T, error) {
	var zero T
	if u.IsNull() {
		return zero, newPreconditionError("Read", u.String(),
			"call Write before reading, or use TryRead to probe the handle", ErrNullPointer)
	}
	if !u.IsWritten() {
		return zero, newPreconditionError("Read", u.String(),
			"call Write before reading, or use TryRead to probe the handle", ErrNotWritten)
	}
	return *u.ptr, nil
}

// TryRead returns a copy of the stored value and true, or the zero value
// and false when the handle is null or unwritten.
func (u *UniquePointer[T]) TryRead() (T, bool) {
	var zero T
	if u.IsNull() || !u.IsWritten() {
		return zero, false
	}
	return *u.ptr, true
}

// Ref returns a borrowed view of the stored value without touching the
// reference count. The view is valid only while the handle is; ok is
// false when the handle is null or unwritten. Mutations through the view
// are visible to every handle sharing the allocation.
func (u *UniquePointer[T]) Ref() (*T, bool) {
	if !u.IsWritten() {
		return nil, false
	}
	return u.ptr, true
}

// MustRef returns a borrowed view of the backing memory, written or not.
// It panics with a *PreconditionError if the handle is null.
func (u *UniquePointer[T]) MustRef() *T {
	if u.IsNull() {
		panic(newPreconditionError("MustRef", u.String(),
			"check IsNull, or use Ref for a non-panicking view", ErrNullPointer))
	}
	return u.ptr
}

// IntoOwned extracts the stored value as a fresh *T, leaving the handle
// and its memory untouched. The copy escapes the handle's lifetime
// entirely. Fails like Read when the handle is null or unwritten.
func (u *UniquePointer[T]) IntoOwned() (*T, error) {
	if u.IsNull() {
		return nil, newPreconditionError("IntoOwned", u.String(),
			"check IsNull, or use TryIntoOwned to probe the handle", ErrNullPointer)
	}
	value, err := u.Read()
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// TryIntoOwned is IntoOwned with an ok result instead of an error.
func (u *UniquePointer[T]) TryIntoOwned() (*T, bool) {
	if u.IsNull() {
		return nil, false
	}
	value, ok := u.TryRead()
	if !ok {
		return nil, false
	}
	return &value, true
}

// Clone returns an alias handle sharing the source's address and counter,
// and increments the shared count by one. The clone copies the source's
// flags but always carries the alias-copy bit, so it can never free the
// shared memory: only the original owner's Dealloc reaches the free path.
// Cloning a null handle does not increment the count.
func (u *UniquePointer[T]) Clone() UniquePointer[T] {
	u.incrRef()
	clone := aliasSeed[T]()
	clone.setPtr(u.ptr)
	clone.refs = u.refs.Clone()
	clone.flags = u.flags
	clone.flags.Add(flags.AliasCopy)
	return clone
}

// Propagate returns a handle sharing the source's address, counter and
// flags verbatim, without the alias-copy bit. The result is, from the
// free-decision's point of view, indistinguishable from an original
// owner: two propagated handles over one allocation can each free it,
// producing a double free. Propagate exists so a container can reassign
// ownership between sibling fields (rotating a tree, restitching a list)
// without reallocating; proving that exactly one of the handles ever
// reaches the free path is the caller's obligation. Prefer Clone.
func (u *UniquePointer[T]) Propagate() UniquePointer[T] {
	u.incrRef()
	back := Null[T]()
	back.setPtr(u.ptr)
	back.refs = u.refs.Clone()
	back.flags = u.flags
	return back
}

// Dealloc releases the handle.
//
// With soft=true the shared count is decremented while it is above zero
// and the memory stays alive for the remaining holders; only when the
// count has already reached zero does the backing value get freed, the
// handle reset to null and all flags cleared.
//
// With soft=false the handle frees immediately, bypassing the count;
// intended only for callers that have independently proven exclusivity.
//
// Either way the free itself is gated on CanDealloc: an alias copy or a
// null handle never frees memory. Dealloc on a null handle is a no-op.
func (u *UniquePointer[T]) Dealloc(soft bool) {
	if u.IsNull() {
		return
	}
	if soft && u.Refs() > 0 {
		u.decrRef()
	} else {
		u.free()
	}
}

// Equal reports whether two handles are equal: same address (identity
// short-circuits value comparison), both null, or equal referents once
// both are known non-null.
func (u *UniquePointer[T]) Equal(other *UniquePointer[T]) bool {
	if u.Addr() == other.Addr() {
		return true
	}
	if u.IsNull() {
		return other.IsNull()
	}
	if other.IsNull() {
		return false
	}
	return reflect.DeepEqual(*u.ptr, *other.ptr)
}

// Hash64 returns a 64-bit FNV-1a fingerprint of the raw bytes of the
// backing value, or 0 for a null handle. Handles sharing an allocation
// hash identically.
func (u *UniquePointer[T]) Hash64() uint64 {
	return mem.Fingerprint(u.ptr)
}

// String renders the handle for diagnostics: address, referent (when
// readable), count and flags.
func (u *UniquePointer[T]) String() string {
	if !u.IsNull() {
		return fmt.Sprintf("UniquePointer%016x[src=%v][refs=%d][is_copy=%t]",
			u.Addr(), *u.ptr, u.Refs(), u.IsCopy())
	}
	return fmt.Sprintf("UniquePointer%016x[refs=%d][alloc=%t][written=%t][is_copy=%t]",
		u.Addr(), u.Refs(), u.IsAllocated(), u.IsWritten(), u.IsCopy())
}

// Compare orders two handles: a null handle sorts before a non-null one,
// handles sharing an address are equal, and otherwise the referents are
// compared. Two null handles are equal.
func Compare[T cmp.Ordered](a, b *UniquePointer[T]) int {
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

// incrRef bumps the shared count. Cloning machinery only; a null handle
// never counts references.
func (u *UniquePointer[T]) incrRef() {
	if u.IsNull() {
		return
	}
	u.refs.Incr()
}

// decrRef drops the shared count by one, saturating at zero.
func (u *UniquePointer[T]) decrRef() {
	if u.Refs() == 0 {
		return
	}
	u.refs.Decr()
}

// free releases the backing value when the handle is entitled to. The
// pointer and counter cell are dropped for the garbage collector to
// reclaim; there is no explicit deallocation to mirror. Flags are cleared
// only on the entitled path, so an alias copy passed through free keeps
// its state untouched.
func (u *UniquePointer[T]) free() {
	if !u.CanDealloc() {
		return
	}
	if allocdepot.Enabled() {
		allocdepot.Untrack(u.addr)
	}
	u.setPtr(nil)
	u.refs.Drain()
	u.flags.Clear()
}

// setPtr points the handle at p and keeps the cached address in step.
func (u *UniquePointer[T]) setPtr(p *T) {
	u.addr = mem.Addr(p)
	u.ptr = p
}
