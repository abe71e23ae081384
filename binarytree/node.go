// Package binarytree is a worked consumer of the ptr package: a
// parent-linked binary tree whose links are UniquePointer aliases into
// node memory and whose nodes keep a manual RefCounter tally of every
// live reference to them.
//
// Linking a child touches two counters: SetLeft and SetRight increment
// the receiver, the child, and every ancestor of each, so a node's
// Refs() reports how many places in the tree can still reach it.
// Detaching (DeleteLeft, Disconnect, SubtreeDelete) walks the same
// chains back down. The package exercises aliasing, swapping, and
// release mechanics end to end; it is not a production container.
package binarytree

import (
	"fmt"
	"strings"

	"github.com/kolkov/uniqueptr/internal/ptr/mem"
	"github.com/kolkov/uniqueptr/ptr"
)

// Node is a binary tree node. Links are alias handles, so a node does
// not own its neighbors; the shared refs counter tracks how many links
// and live handles point at it.
type Node struct {
	parent ptr.UniquePointer[Node]
	left   ptr.UniquePointer[Node]
	right  ptr.UniquePointer[Node]
	item   ptr.UniquePointer[Value]
	refs   ptr.RefCounter
}

// Nil returns a disconnected node with no value and one reference (its
// own).
func Nil() *Node {
	return &Node{
		parent: ptr.Null[Node](),
		left:   ptr.Null[Node](),
		right:  ptr.Null[Node](),
		item:   ptr.Null[Value](),
		refs:   ptr.NewRefCounter(),
	}
}

// New returns a disconnected node holding value.
func New(value Value) *Node {
	n := Nil()
	n.item.Write(value)
	return n
}

// IsNil reports whether the node carries no value, no links, and at
// most its own reference.
func (n *Node) IsNil() bool {
	return n.item.IsNull() &&
		n.left.IsNull() &&
		n.right.IsNull() &&
		n.parent.IsNull() &&
		n.refs.Read() <= 1
}

// Value returns a copy of the node's value, or nil when the node holds
// none.
func (n *Node) Value() *Value {
	if v, ok := n.item.TryRead(); ok {
		return &v
	}
	return nil
}

// Item returns the node's value, or the nil variant when the node
// holds none.
func (n *Node) Item() Value {
	if v := n.Value(); v != nil {
		return *v
	}
	return Value{}
}

// Parent returns the linked parent node, or nil at the root.
func (n *Node) Parent() *Node {
	if p, ok := n.parent.Ref(); ok {
		return p
	}
	return nil
}

// Left returns the linked left child, or nil.
func (n *Node) Left() *Node {
	if l, ok := n.left.Ref(); ok {
		return l
	}
	return nil
}

// Right returns the linked right child, or nil.
func (n *Node) Right() *Node {
	if r, ok := n.right.Ref(); ok {
		return r
	}
	return nil
}

// ParentValue returns a copy of the parent's value, or nil.
func (n *Node) ParentValue() *Value {
	if p := n.Parent(); p != nil {
		return p.Value()
	}
	return nil
}

// LeftValue returns a copy of the left child's value, or nil.
func (n *Node) LeftValue() *Value {
	if l := n.Left(); l != nil {
		return l.Value()
	}
	return nil
}

// RightValue returns a copy of the right child's value, or nil.
func (n *Node) RightValue() *Value {
	if r := n.Right(); r != nil {
		return r.Value()
	}
	return nil
}

// SetLeft links child as the left child of n. Both nodes gain a
// reference, as does every ancestor of each, since one more path into
// each subtree now exists.
func (n *Node) SetLeft(child *Node) {
	n.IncrRef()
	child.parent = n.handle()
	n.left = child.handle()
	child.IncrRef()
}

// SetRight links child as the right child of n. Reference counts move
// exactly as in SetLeft.
func (n *Node) SetRight(child *Node) {
	n.IncrRef()
	child.parent = n.handle()
	n.right = child.handle()
	child.IncrRef()
}

// DeleteLeft unlinks the left child, releasing the references the link
// held on the child and on this chain.
func (n *Node) DeleteLeft() {
	if n.left.IsNull() {
		return
	}
	n.left.MustRef().DecrRef()
	n.left.Dealloc(true)
	n.left = ptr.Null[Node]()
}

// DeleteRight unlinks the right child, releasing the references the
// link held on the child and on this chain.
func (n *Node) DeleteRight() {
	if n.right.IsNull() {
		return
	}
	n.right.MustRef().DecrRef()
	n.right.Dealloc(true)
	n.right = ptr.Null[Node]()
}

// Refs returns the node's reference count.
func (n *Node) Refs() uint64 {
	return n.refs.Read()
}

// IncrRef adds a reference to this node and to every ancestor up the
// parent chain.
func (n *Node) IncrRef() {
	n.refs.Incr()
	for node := n.Parent(); node != nil; node = node.Parent() {
		node.refs.Incr()
	}
}

// DecrRef drops a reference from this node and from every ancestor up
// the parent chain.
func (n *Node) DecrRef() {
	n.refs.Decr()
	for node := n.Parent(); node != nil; node = node.Parent() {
		node.refs.Decr()
	}
}

// Height counts the vertices along the left spine below n.
func (n *Node) Height() int {
	vertices := 0
	node := n
	for !node.left.IsNull() {
		node = node.left.MustRef()
		vertices++
	}
	return vertices
}

// Depth counts the vertices between n and the root.
func (n *Node) Depth() int {
	vertices := 0
	node := n
	for !node.parent.IsNull() {
		node = node.parent.MustRef()
		vertices++
	}
	return vertices
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return n.left.IsNull() && n.right.IsNull()
}

// Addr returns the address of the node itself.
func (n *Node) Addr() uintptr {
	return mem.Addr(n)
}

// ParentAddr returns the address held by the parent link.
func (n *Node) ParentAddr() uintptr {
	return n.parent.Addr()
}

// LeftAddr returns the address held by the left link.
func (n *Node) LeftAddr() uintptr {
	return n.left.Addr()
}

// RightAddr returns the address held by the right link.
func (n *Node) RightAddr() uintptr {
	return n.right.Addr()
}

// SubtreeFirst returns the first node of the subtree rooted at n in
// traversal order, which is the leftmost descendant.
func (n *Node) SubtreeFirst() *Node {
	node := n
	for !node.left.IsNull() {
		node = node.left.MustRef()
	}
	return node
}

// Successor returns the node that follows n in traversal order: the
// first node of the right subtree when one exists, otherwise the
// closest ancestor reached through a left link. A node with no
// successor gets itself back.
func (n *Node) Successor() *Node {
	if !n.right.IsNull() {
		return n.right.MustRef().SubtreeFirst()
	}
	if p := n.Parent(); p != nil && p.parent.IsNull() {
		// The parent is the root and there is no right subtree, so
		// traversal restarts from the leftmost node under n.
		return n.SubtreeFirst()
	}
	successor := n
	for {
		if left := successor.Left(); left != nil && left.Equal(n) {
			break
		}
		if successor.parent.IsNull() {
			break
		}
		successor = successor.parent.MustRef()
	}
	return successor
}

// Predecessor returns the node that precedes n in traversal order: the
// nearest node of the left subtree when one exists, otherwise the
// closest ancestor holding n through a right link.
func (n *Node) Predecessor() *Node {
	predecessor := n
	for {
		if !predecessor.left.IsNull() {
			predecessor = predecessor.left.MustRef()
			if !predecessor.right.IsNull() {
				predecessor = predecessor.right.MustRef()
			}
			break
		}
		if predecessor.parent.IsNull() {
			break
		}
		predecessor = predecessor.parent.MustRef()
		if right := predecessor.Right(); right != nil && right.Equal(n) {
			break
		}
	}
	return predecessor
}

// SubtreeInsertAfter places child immediately after n in traversal
// order: as the right child when that slot is free, otherwise as the
// left child of n's successor.
func (n *Node) SubtreeInsertAfter(child *Node) {
	if n.right.IsNull() {
		n.SetRight(child)
		return
	}
	n.Successor().SetLeft(child)
}

// SwapItem exchanges the values of two nodes in place. Links and
// reference counts stay put; only the payload cells trade contents.
func (n *Node) SwapItem(other *Node) {
	n.item.Swap(&other.item)
}

// Disconnect unlinks n from its parent and gives back the references
// its links hold on its children and on the chain above it.
func (n *Node) Disconnect() {
	if !n.left.IsNull() {
		n.left.MustRef().refs.Decr()
	}
	if !n.right.IsNull() {
		n.right.MustRef().refs.Decr()
	}
	if n.parent.IsNull() {
		return
	}
	parent := n.parent.MustRef()
	deleteLeft := false
	if left := parent.Left(); left != nil {
		deleteLeft = left.Equal(n)
	}
	if deleteLeft {
		parent.left.Dealloc(true)
		parent.left = ptr.Null[Node]()
	} else {
		parent.right.Dealloc(true)
		parent.right = ptr.Null[Node]()
	}
	parent.DecrRef()
	n.parent.Dealloc(true)
	n.parent = ptr.Null[Node]()
}

// Dealloc releases one reference to the node, walking the parent chain
// as DecrRef does. Once no references remain it releases the node's
// handles instead, letting the runtime reclaim the cells.
func (n *Node) Dealloc() {
	if n.refs.Read() > 0 {
		n.DecrRef()
		return
	}
	if !n.parent.IsNull() {
		n.parent.Dealloc(true)
	}
	if !n.left.IsNull() {
		n.left.Dealloc(true)
	}
	if !n.right.IsNull() {
		n.right.Dealloc(true)
	}
	if !n.item.IsNull() {
		n.item.Dealloc(true)
	}
}

// SubtreeDelete removes node from the tree it is linked into. A leaf
// is unlinked from its parent and its counter reset to one reference;
// an interior node first trades values with its predecessor so that a
// leaf can be deleted in its place.
func SubtreeDelete(node *Node) {
	if !node.Leaf() {
		predecessor := node.Predecessor()
		predecessor.SwapItem(node)
		SubtreeDelete(predecessor)
		return
	}
	node.DecrRef()
	if !node.parent.IsNull() {
		parent := node.parent.MustRef()
		deleteLeft := false
		if left := parent.Left(); left != nil {
			deleteLeft = left.Equal(node)
		}
		if deleteLeft {
			parent.left.Dealloc(true)
			parent.left = ptr.Null[Node]()
		} else {
			parent.right.Dealloc(true)
			parent.right = ptr.Null[Node]()
		}
		node.parent.Dealloc(true)
		node.parent = ptr.Null[Node]()
	}
	node.refs.Reset()
}

// Equal compares nodes by their values: same item cell, or equal
// payloads. Links and reference counts do not participate, so a node
// compares equal to a detached copy carrying the same value.
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	return n.itemEq(other)
}

func (n *Node) itemEq(other *Node) bool {
	if n.item.Addr() == other.item.Addr() {
		return true
	}
	a, b := n.Value(), other.Value()
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Clone returns a node sharing this node's counter and linked
// neighbors. The links are cloned alias handles, so the clone observes
// and contributes to the same reference bookkeeping.
func (n *Node) Clone() *Node {
	node := Nil()
	node.refs = n.refs.Clone()
	if !n.parent.IsNull() {
		node.parent = n.parent.Clone()
	}
	if !n.left.IsNull() {
		node.left = n.left.Clone()
	}
	if !n.right.IsNull() {
		node.right = n.right.Clone()
	}
	if !n.item.IsNull() {
		node.item = n.item.Clone()
	}
	return node
}

// String renders the node state for diagnostics: address, reference
// count, value, and the values reachable through its links.
func (n *Node) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Node@%016x[refs=%d]", n.Addr(), n.refs.Read())
	if n.item.IsNull() {
		b.WriteString("null")
	} else {
		fmt.Fprintf(&b, "[item=%s]", debugValue(n.Value()))
	}
	if !n.parent.IsNull() {
		fmt.Fprintf(&b, "(parent:%s)", debugValue(n.ParentValue()))
	}
	if !n.left.IsNull() || !n.right.IsNull() {
		left, right := "null", "null"
		if !n.left.IsNull() {
			left = debugValue(n.LeftValue())
		}
		if !n.right.IsNull() {
			right = debugValue(n.RightValue())
		}
		fmt.Fprintf(&b, "[left:%s | right:%s]", left, right)
	}
	return b.String()
}

// handle returns an alias into the node's memory seeded with the
// node's current reference count.
func (n *Node) handle() ptr.UniquePointer[Node] {
	return ptr.CopyFromRef(n, n.refs.Read())
}

func debugValue(v *Value) string {
	if v == nil {
		return "empty"
	}
	return v.GoString()
}
