// Package conscell is a worked consumer of the ptr package: a lisp
// style singly linked list whose head and tail live behind
// UniquePointer handles and whose cells share a RefCounter that
// cascades down the tail chain.
//
// The package covers list mechanics only (construction, linking,
// traversal, release), not evaluation.
package conscell

import (
	"strings"

	"github.com/kolkov/uniqueptr/ptr"
)

// Cell is one link of a list: an atom in head, the rest of the list in
// tail. Operations that take or give back references walk the whole
// tail chain, so a cell's counter reflects every live way to reach it.
type Cell struct {
	head   ptr.UniquePointer[Value]
	tail   ptr.UniquePointer[Cell]
	refs   ptr.RefCounter
	quoted bool
}

// Nil returns an empty cell.
func Nil() *Cell {
	return Quoted(nil, false)
}

// New returns a cell holding the given atom.
func New(v Value) *Cell {
	return Quoted(&v, false)
}

// Quoted returns a cell holding item (which may be nil) with the quote
// mark set as given.
func Quoted(item *Value, quoted bool) *Cell {
	c := &Cell{
		head:   ptr.Null[Value](),
		tail:   ptr.Null[Cell](),
		refs:   ptr.NewRefCounter(),
		quoted: quoted,
	}
	c.incrRef()
	if item != nil {
		c.write(*item)
	}
	return c
}

// Cons prepends an atom to a list, returning the new first cell.
func Cons(v Value, list *Cell) *Cell {
	c := New(v)
	c.Add(list)
	return c
}

// IsNil reports whether the cell holds neither an atom nor a tail.
func (c *Cell) IsNil() bool {
	return c.head.IsNull() && c.tail.IsNull()
}

// IsQuoted reports whether the cell carries the quote mark.
func (c *Cell) IsQuoted() bool {
	return c.quoted
}

// SetQuoted sets or clears the quote mark.
func (c *Cell) SetQuoted(quoted bool) {
	c.quoted = quoted
}

// Head returns a copy of the cell's atom, or nil when it has none.
func (c *Cell) Head() *Value {
	if v, ok := c.head.TryRead(); ok {
		return &v
	}
	return nil
}

// Tail returns the rest of the list, or nil.
func (c *Cell) Tail() *Cell {
	if t, ok := c.tail.Ref(); ok {
		return t
	}
	return nil
}

// Add appends the given list to this one. The argument is cloned, so
// the caller's cells are left linked as they were; both chains gain a
// reference.
func (c *Cell) Add(other *Cell) {
	if other == nil || other.IsNil() {
		return
	}
	add := other.Clone()
	c.incrRef()

	if c.head.IsNull() {
		if !add.head.IsNull() {
			c.swapHead(add)
		}
		c.tail = ptr.From(*add)
		return
	}
	if c.tail.IsNull() {
		c.tail = ptr.From(*add)
		return
	}
	c.tail.MustRef().Add(add)
}

// Push appends a single atom to the list.
func (c *Cell) Push(v Value) {
	c.Add(New(v))
}

// Pop removes the tail chain when one is linked, otherwise the atom.
// It reports whether anything was removed.
func (c *Cell) Pop() bool {
	if !c.tail.IsNull() {
		c.tail.Dealloc(true)
		c.tail = ptr.Null[Cell]()
		return true
	}
	if !c.head.IsNull() {
		c.head.Dealloc(true)
		c.head = ptr.Null[Value]()
		return true
	}
	return false
}

// IsEmpty reports whether the list holds no atoms.
func (c *Cell) IsEmpty() bool {
	return c.Len() == 0
}

// Len counts the atoms in the list. O(n).
func (c *Cell) Len() int {
	n := 0
	if !c.head.IsNull() {
		n++
	}
	if t := c.Tail(); t != nil {
		n += t.Len()
	}
	return n
}

// Values collects the atoms in list order.
func (c *Cell) Values() []Value {
	values := []Value{}
	if v := c.Head(); v != nil {
		values = append(values, *v)
	}
	if t := c.Tail(); t != nil {
		values = append(values, t.Values()...)
	}
	return values
}

// Each calls fn for every atom in list order.
func (c *Cell) Each(fn func(Value)) {
	for node := c; node != nil; node = node.Tail() {
		if v, ok := node.head.TryRead(); ok {
			fn(v)
		}
	}
}

// Equal compares two lists atom by atom.
func (c *Cell) Equal(other *Cell) bool {
	if other == nil {
		return c.IsNil()
	}
	if c.IsNil() && other.IsNil() {
		return true
	}
	a, b := c.Values(), other.Values()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a cell sharing this cell's counter, carrying a copy of
// the atom and a clone of the tail chain. Cloning adds a reference to
// the chain it was cloned from.
func (c *Cell) Clone() *Cell {
	cell := Nil()
	cell.refs = c.refs.Clone()
	cell.incrRef()
	cell.quoted = c.quoted
	if v := c.Head(); v != nil {
		cell.head.Write(*v)
	}
	if t := c.Tail(); t != nil {
		cell.tail.Write(*t.Clone())
	}
	return cell
}

// Dealloc releases one reference to the cell and its tail chain. Once
// no references remain it releases the head and tail handles instead,
// letting the runtime reclaim the cells.
func (c *Cell) Dealloc() {
	if c.refs.Read() > 0 {
		c.decrRef()
		return
	}
	c.head.Dealloc(true)
	c.tail.Dealloc(true)
}

// String renders the list in list notation, e.g. `(head 33 "tail")`,
// with a leading quote mark when the cell is quoted.
func (c *Cell) String() string {
	parts := make([]string, 0, c.Len())
	c.Each(func(v Value) {
		parts = append(parts, v.String())
	})
	s := "(" + strings.Join(parts, " ") + ")"
	if c.quoted {
		return "'" + s
	}
	return s
}

func (c *Cell) write(v Value) {
	c.head.Write(v)
	c.incrRef()
}

// swapHead trades atom cells between two lists without touching
// counters.
func (c *Cell) swapHead(other *Cell) {
	head := other.head.Propagate()
	other.head = c.head.Propagate()
	c.head = head
}

func (c *Cell) incrRef() {
	c.refs.Incr()
	if t := c.Tail(); t != nil {
		t.incrRef()
	}
}

func (c *Cell) decrRef() {
	c.refs.Decr()
	if t := c.Tail(); t != nil {
		t.decrRef()
	}
}
