// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"strings"
)

// RootName is the name of the root node of a [Tree].
const RootName = "/"

// Tree is a virtual file tree backed by a [Host].
type Tree struct {
	host    Host
	logger  *slog.Logger
	metrics *Metrics

	// Do not access directly! Always use [Tree.Root] to access the root
	// node to ensure it exists.
	root *Node
}

// Option configures a [Tree].
type Option func(*Tree)

// WithLogger sets the logger used by the tree. Default is [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// WithMetrics sets the metrics the tree operations are counted in.
func WithMetrics(metrics *Metrics) Option {
	return func(t *Tree) {
		t.metrics = metrics
	}
}

// NewTree creates a new tree backed by the given host.
func NewTree(host Host, opts ...Option) *Tree {
	tree := &Tree{
		host:   host,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(tree)
	}

	return tree
}

// Root returns the root directory node of the tree.
func (t *Tree) Root() *Node {
	if t.root == nil {
		t.root = CreateRoot(RootName, TypeDirectory)
	}

	return t.root
}

// Stat returns the type of the node. If the type is unknown, it is looked up
// on the host once and stored in the node.
func (t *Tree) Stat(n *Node) (Type, error) {
	if n.typ != TypeUnknown {
		return n.typ, nil
	}

	typ, err := t.host.Lstat(n.ActualPath())
	if err != nil {
		//nolint:wrapcheck
		return TypeUnknown, err
	}

	n.setType(typ)

	return n.typ, nil
}

// DeleteSubtree removes n and all its descendants from the tree and returns
// the number of removed nodes.
//
// If any node in the subtree is still referenced, [ErrBusy] is returned and
// nothing is removed. Special nodes are removed like any other node.
// Deleting the root leaves an empty tree with a fresh root.
func (t *Tree) DeleteSubtree(n *Node) (int, error) {
	if busy := findBusy(n); busy != nil {
		return 0, newPathError("delete", busy.VirtualPath(), ErrBusy)
	}

	parent := n.parent

	count := deleteNodes(n)
	if parent != nil {
		parent.removeChild(n)
	}

	if n == t.root {
		t.root = nil
	}

	t.metrics.deleted(count)

	return count, nil
}

// findBusy returns the first node in the subtree of n that is referenced
// from outside of the tree.
func findBusy(n *Node) *Node {
	for _, child := range n.Children() {
		if busy := findBusy(child); busy != nil {
			return busy
		}
	}

	if n.refs > 1 {
		return n
	}

	return nil
}

// deleteNodes removes all descendants of n bottom-up.
func deleteNodes(n *Node) int {
	count := 1

	for _, child := range n.Children() {
		count += deleteNodes(child)
		n.removeChild(child)
	}

	n.childrenFilled = false
	n.refs = 0

	return count
}

// Bind makes the host path hostPath visible at guestPath. Missing
// directories on the way to guestPath are created. The node for guestPath
// gets the type of hostPath. Binding "/" replaces the root of the actual
// file system.
func (t *Tree) Bind(guestPath, hostPath string) (*Node, error) {
	if !isAbs(guestPath) {
		return nil, newPathError("bind", guestPath, ErrInvalid)
	}

	node := t.Root()

	for iter := newComponentIter(strings.TrimRight(guestPath, "/")); iter.next(); {
		var err error

		name := iter.component()
		if iter.last() && name != "." && name != ".." {
			node, err = t.bindTarget(node, name, hostPath)
		} else {
			node, err = t.bindStep(node, name, TypeDirectory)
		}

		if err != nil {
			return nil, newPathError("bind", guestPath, err)
		}
	}

	err := t.SetActualPath(node, hostPath)
	if err != nil {
		return nil, err
	}

	return node, nil
}

// bindTarget returns the node name in dir with the type of hostPath.
func (t *Tree) bindTarget(dir *Node, name, hostPath string) (*Node, error) {
	typ, err := t.host.Lstat(hostPath)
	if err != nil {
		t.logger.Debug("Bind missing host path as directory",
			slog.String("host", hostPath),
			slog.Any("error", err),
		)

		typ = TypeDirectory
	}

	return t.bindStep(dir, name, typ)
}

// bindStep returns the node with the given name and type in dir. Missing
// nodes are created without looking at the host. Existing nodes of another
// type are replaced.
func (t *Tree) bindStep(dir *Node, name string, typ Type) (*Node, error) {
	switch name {
	case ".":
		return dir, nil
	case "..":
		if dir.parent == nil {
			return dir, nil
		}

		return dir.parent, nil
	}

	child, fillErr := t.lookup(dir, name)
	if child == nil {
		t.logger.Debug("Create bind node",
			slog.String("dir", dir.VirtualPath()),
			slog.String("name", name),
			slog.Any("fill_error", fillErr),
		)

		return CreateChild(dir, name, typ), nil
	}

	existing, err := t.Stat(child)
	if err == nil && existing == typ {
		return child, nil
	}

	_, err = t.DeleteSubtree(child)
	if err != nil {
		return nil, err
	}

	return CreateChild(dir, name, typ), nil
}

// WalkFunc is called by [Tree.Walk] for each visited node. depth is 0 for
// the start node.
//
// As with [fs.WalkDirFunc], returning [fs.SkipDir] for a directory skips its
// children, while returning it for any other node skips the remaining
// children of its parent. [fs.SkipAll] ends the walk without error. Any
// other error stops the walk and is returned.
type WalkFunc func(path string, node *Node, depth int) error

// Walk visits n and all its descendants in pre-order. Directories are filled
// from the host before their children are visited. Fill errors are logged
// and the walk continues with the children known so far.
func (t *Tree) Walk(n *Node, fn WalkFunc) error {
	err := t.walk(n.VirtualPath(), n, 0, fn)
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}

	return err
}

func (t *Tree) walk(path string, n *Node, depth int, fn WalkFunc) error {
	err := fn(path, n, depth)
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	typ, err := t.Stat(n)
	if err != nil || typ != TypeDirectory {
		return nil //nolint:nilerr
	}

	err = t.FillChildren(n)
	if err != nil {
		t.logger.Warn("Cannot dive into directory",
			slog.String("virtual", path),
			slog.String("actual", n.ActualPath()),
			slog.Any("error", err),
		)
	}

	for name, child := range n.Children() {
		err := t.walk(JoinComponents([]string{path, name}), child, depth+1, fn)
		if errors.Is(err, fs.SkipDir) {
			if typ, statErr := t.Stat(child); statErr == nil && typ == TypeDirectory {
				continue
			}

			return nil
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// All returns an iterator over n and all its descendants that are present in
// the tree already. Nothing is read from the host. Paths are virtual paths.
func (t *Tree) All(n *Node) iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		type entry struct {
			path string
			node *Node
		}

		queue := []entry{{n.VirtualPath(), n}}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			if !yield(current.path, current.node) {
				return
			}

			for name, child := range current.node.Children() {
				path := JoinComponents([]string{current.path, name})
				queue = append(queue, entry{path, child})
			}
		}
	}
}

// String returns a short description of the node for logging.
func (n *Node) String() string {
	return fmt.Sprintf("%s (%s)", n.name, n.typ)
}
