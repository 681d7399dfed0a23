// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"iter"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Evaluator is a hook for synthetic nodes whose content is generated instead
// of read from the host. The tree only records its presence.
type Evaluator func(node *Node) error

// cached is an optional string value owned by a single cache.
type cached struct {
	value string
	valid bool
}

func (c *cached) get() (string, bool) {
	return c.value, c.valid
}

func (c *cached) set(value string) {
	c.value = value
	c.valid = true
}

func (c *cached) clear() {
	*c = cached{}
}

// Node is a single named filesystem object in the virtual tree.
//
// A node is owned by its parent. Code outside of the tree that needs a node
// to stay alive must hold a [Ref] obtained by [Node.Acquire].
type Node struct {
	name   string
	typ    Type
	parent *Node

	// children maps names to *Node in insertion order.
	children *linkedhashmap.Map

	special        bool
	childrenFilled bool
	evaluator      Evaluator

	// retained is set for nodes a flush kept in place. The next fill of the
	// parent expects to find them.
	retained bool

	// override is the explicitly set actual path of a special node.
	override string

	actualPath    cached
	virtualPath   cached
	symlinkTarget cached

	// refs starts at 1 for the reference held by the tree itself.
	refs int
}

// CreateRoot creates a new parentless node.
func CreateRoot(name string, typ Type) *Node {
	return &Node{
		name: name,
		typ:  typ,
		refs: 1,
	}
}

// CreateChild creates a new node and attaches it to parent. If parent already
// has a child with the given name, that child is returned unchanged.
func CreateChild(parent *Node, name string, typ Type) *Node {
	if child, exists := parent.Child(name); exists {
		return child
	}

	child := &Node{
		name:   name,
		typ:    typ,
		parent: parent,
		refs:   1,
	}

	if parent.children == nil {
		parent.children = linkedhashmap.New()
	}

	parent.children.Put(name, child)

	return child
}

// Name returns the name of the node. The root is usually named "/".
func (n *Node) Name() string {
	return n.name
}

// Type returns the type of the node.
func (n *Node) Type() Type {
	return n.typ
}

// Parent returns the parent node or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot returns true if the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// IsDir returns true if the node is a directory.
func (n *Node) IsDir() bool {
	return n.typ == TypeDirectory
}

// IsSymlink returns true if the node is a symbolic link.
func (n *Node) IsSymlink() bool {
	return n.typ == TypeSymlink
}

// IsSpecial returns true if the actual path of the node has been set
// explicitly.
func (n *Node) IsSpecial() bool {
	return n.special
}

// ChildrenFilled returns true if the host directory entries have been merged
// into the children of the node.
func (n *Node) ChildrenFilled() bool {
	return n.childrenFilled
}

// Evaluator returns the evaluator attached to the node, if any.
func (n *Node) Evaluator() Evaluator {
	return n.evaluator
}

// SetEvaluator attaches an evaluator to the node.
func (n *Node) SetEvaluator(evaluator Evaluator) {
	n.evaluator = evaluator
}

// Child returns the child with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}

	value, found := n.children.Get(name)
	if !found {
		return nil, false
	}

	//nolint:forcetypeassert
	return value.(*Node), true
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n.children == nil {
		return 0
	}

	return n.children.Size()
}

// Children returns an iterator over a snapshot of the children in insertion
// order. Removing the current child while iterating is safe.
func (n *Node) Children() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n.children == nil {
			return
		}

		for _, value := range n.children.Values() {
			//nolint:forcetypeassert
			child := value.(*Node)
			if !yield(child.name, child) {
				return
			}
		}
	}
}

// removeChild detaches child from n.
func (n *Node) removeChild(child *Node) {
	if n.children != nil {
		n.children.Remove(child.name)
	}

	child.parent = nil
}

// Acquire takes a reference on the node. The node is protected from reclaim
// and deletion until the returned [Ref] is released.
func (n *Node) Acquire() *Ref {
	n.refs++

	return &Ref{node: n}
}

// RefCount returns the number of live references including the one held by
// the tree.
func (n *Node) RefCount() int {
	return n.refs
}

func (n *Node) setType(typ Type) {
	if n.typ == TypeUnknown {
		n.typ = typ
	}
}

// Ref is a counted handle on a [Node].
type Ref struct {
	node *Node
}

// Node returns the referenced node. It returns nil once the reference has
// been released.
func (r *Ref) Node() *Node {
	return r.node
}

// Release drops the reference. Subsequent calls are no-ops.
func (r *Ref) Release() {
	if r.node == nil {
		return
	}

	r.node.refs--
	r.node = nil
}
