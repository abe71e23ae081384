package conscell

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestCellHead(t *testing.T) {
	cell := New(Sym("head"))

	AssertNotNil(cell.Head())
	AssertEqual(*cell.Head(), Sym("head"))
	AssertNil(cell.Tail())
}

func TestCellNil(t *testing.T) {
	cell := Nil()

	AssertTrue(cell.IsNil())
	AssertTrue(cell.IsEmpty())
	AssertNil(cell.Head())
	AssertNil(cell.Tail())
	AssertEqual(cell.Len(), 0)
	AssertEqual(cell.String(), "()")
}

func TestCellCloneNil(t *testing.T) {
	cell := Nil()

	AssertTrue(cell.Clone().Equal(Nil()))
}

func TestCellCloneLinked(t *testing.T) {
	head := New(Sym("head"))
	tail := New(Sym("tail"))
	head.Add(tail)

	cell := head.Clone()

	AssertTrue(head.Equal(cell))
	AssertEqual(cell.Values(), []Value{Sym("head"), Sym("tail")})
}

func TestCellAddWhenHeadIsNull(t *testing.T) {
	head := Nil()
	cell := New(Sym("head"))

	head.Add(cell)

	AssertEqual(head.Values(), []Value{Sym("head")})
	AssertEqual(head.Len(), 1)
}

func TestCellAddAndPop(t *testing.T) {
	head := New(Sym("head"))
	cell := New(Sym("cell"))

	AssertEqual(head.Len(), 1)
	AssertEqual(head.Values(), []Value{Sym("head")})

	head.Add(cell)

	AssertEqual(head.Values(), []Value{Sym("head"), Sym("cell")})
	AssertEqual(head.Len(), 2)

	AssertTrue(head.Pop())

	AssertEqual(head.Values(), []Value{Sym("head")})
	AssertEqual(head.Len(), 1)

	AssertTrue(head.Pop())

	AssertEqual(head.Values(), []Value{})
	AssertEqual(head.Len(), 0)

	AssertFalse(head.Pop())
	AssertEqual(head.Len(), 0)

	AssertFalse(head.Pop())
	AssertEqual(head.Len(), 0)
}

func TestCellAddWhenTailIsNotNull(t *testing.T) {
	head := New(Sym("head"))
	cell := New(Sym("cell"))
	tail := New(Sym("tail"))

	AssertEqual(head.Values(), []Value{Sym("head")})
	AssertEqual(head.Len(), 1)

	head.Add(cell)

	AssertEqual(head.Values(), []Value{Sym("head"), Sym("cell")})
	AssertEqual(head.Len(), 2)

	head.Add(tail)

	AssertEqual(head.Values(), []Value{Sym("head"), Sym("cell"), Sym("tail")})
	AssertEqual(head.Len(), 3)

	// The sources were cloned in, not linked in.
	AssertEqual(cell.Values(), []Value{Sym("cell")})
	AssertEqual(cell.Len(), 1)
	AssertEqual(tail.Values(), []Value{Sym("tail")})
	AssertEqual(tail.Len(), 1)
}

func TestCellAddNilIsNoop(t *testing.T) {
	head := New(Sym("head"))

	head.Add(nil)
	head.Add(Nil())

	AssertEqual(head.Len(), 1)
	AssertEqual(head.refs.Read(), uint64(3))
}

func TestCellRefCascade(t *testing.T) {
	// A fresh cell holds three references: its own, the bump taken at
	// construction, and the bump taken when the atom was written.
	head := New(Sym("head"))
	cell := New(Sym("cell"))
	AssertEqual(head.refs.Read(), uint64(3))
	AssertEqual(cell.refs.Read(), uint64(3))

	// Linking clones the argument (one bump on its chain) and takes a
	// reference on the receiver.
	head.Add(cell)
	AssertEqual(head.refs.Read(), uint64(4))
	AssertEqual(cell.refs.Read(), uint64(4))

	// The linked copy shares the source's counter.
	AssertNotNil(head.Tail())
	AssertEqual(head.Tail().refs.Read(), cell.refs.Read())

	// Cloning bumps the source through the shared cell.
	clone := head.Clone()
	AssertEqual(head.refs.Read(), uint64(5))
	AssertEqual(clone.refs.Read(), uint64(5))

	// Releasing walks the tail chain back down.
	head.Dealloc()
	AssertEqual(head.refs.Read(), uint64(4))
}

func TestCellPushBuildsList(t *testing.T) {
	list := New(Sym("head"))
	list.Push(Sym("middle"))
	list.Push(UInt(33))
	list.Push(Str("tail"))

	AssertEqual(list.Len(), 4)
	AssertEqual(list.Values(), []Value{
		Sym("head"),
		Sym("middle"),
		UInt(33),
		Str("tail"),
	})
	AssertEqual(list.String(), `(head middle 33 "tail")`)
}

func TestCellQuoteMark(t *testing.T) {
	list := New(Sym("a"))
	list.Push(Sym("b"))

	AssertFalse(list.IsQuoted())
	AssertEqual(list.String(), "(a b)")

	list.SetQuoted(true)
	AssertTrue(list.IsQuoted())
	AssertEqual(list.String(), "'(a b)")

	// The quote mark survives cloning.
	AssertEqual(list.Clone().String(), "'(a b)")
}

func TestCellEach(t *testing.T) {
	list := New(Sym("a"))
	list.Push(Sym("b"))
	list.Push(Sym("c"))

	collected := []Value{}
	list.Each(func(v Value) {
		collected = append(collected, v)
	})

	AssertEqual(collected, list.Values())
	AssertEqual(collected, []Value{Sym("a"), Sym("b"), Sym("c")})
}

func TestCellEqual(t *testing.T) {
	a := New(Sym("x"))
	a.Push(Int(1))
	b := New(Sym("x"))
	b.Push(Int(1))

	AssertTrue(a.Equal(b))

	b.Push(Int(2))
	AssertFalse(a.Equal(b))

	c := New(Sym("x"))
	c.Push(Int(9))
	AssertFalse(a.Equal(c))

	AssertTrue(Nil().Equal(Nil()))
	AssertFalse(a.Equal(Nil()))
	AssertFalse(a.Equal(nil))
	AssertTrue(Nil().Equal(nil))
}

func TestConsPrepends(t *testing.T) {
	cell := Cons(Sym("head"), New(Sym("tail")))

	AssertEqual(cell.Values(), []Value{Sym("head"), Sym("tail")})
	AssertEqual(cell.String(), "(head tail)")
}

func TestConsOntoLongerList(t *testing.T) {
	rest := New(Sym("b"))
	rest.Push(Sym("c"))

	cell := Cons(Sym("a"), rest)

	AssertEqual(cell.Values(), []Value{Sym("a"), Sym("b"), Sym("c")})

	// The rest list is untouched.
	AssertEqual(rest.Values(), []Value{Sym("b"), Sym("c")})
}
