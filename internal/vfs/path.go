// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"log/slog"
	"slices"
)

// Axis selects one of the two paths of a [Node].
type Axis uint8

const (
	// Actual is the host location backing a node.
	Actual Axis = iota
	// Virtual is the location of a node as seen by the guest.
	Virtual
)

func (a Axis) String() string {
	switch a {
	case Actual:
		return "actual"
	case Virtual:
		return "virtual"
	default:
		return "invalid"
	}
}

func (n *Node) cache(axis Axis) *cached {
	if axis == Actual {
		return &n.actualPath
	}

	return &n.virtualPath
}

// ActualPath returns the host path backing the node.
func (n *Node) ActualPath() string {
	return n.path(Actual)
}

// VirtualPath returns the path of the node as seen by the guest.
func (n *Node) VirtualPath() string {
	return n.path(Virtual)
}

// CachedPath returns the path on the given axis only if it has been computed
// already.
func (n *Node) CachedPath(axis Axis) (string, bool) {
	return n.cache(axis).get()
}

// path computes the path on the given axis by walking up the tree. The walk
// stops at the root, at the first ancestor with a cached value or, for the
// actual axis, at the first node with an explicitly set path.
func (n *Node) path(axis Axis) string {
	if value, ok := n.cache(axis).get(); ok {
		return value
	}

	var (
		names  []string
		prefix string
	)

	for current := n; ; current = current.parent {
		if axis == Actual && current.special {
			prefix = current.override
			break
		}

		if value, ok := current.cache(axis).get(); ok {
			prefix = value
			break
		}

		if current.parent == nil {
			prefix = current.name
			break
		}

		names = append(names, current.name)
	}

	names = append(names, prefix)
	slices.Reverse(names)

	path := JoinComponents(names)
	n.cache(axis).set(path)

	return path
}

// FlushPath clears the cached path on the given axis of the node and all its
// descendants. On the actual axis, special nodes keep their path and cached
// symlink targets are cleared as well, as they have been read from the
// actual path.
func (n *Node) FlushPath(axis Axis) {
	if axis != Actual || !n.special {
		n.cache(axis).clear()
	}

	if axis == Actual {
		n.symlinkTarget.clear()
	}

	for _, child := range n.Children() {
		child.FlushPath(axis)
	}
}

// SetActualPath rebinds the node to the given host path. The directory
// listing and all actual paths below the node are discarded, as they were
// derived from the old location. The virtual paths stay untouched.
//
// The node is marked special, so it is neither reclaimed by
// [Tree.FlushChildren] nor does its path get flushed by [Node.FlushPath].
func (t *Tree) SetActualPath(n *Node, path string) error {
	if !isAbs(path) {
		return newPathError("bind", path, ErrInvalid)
	}

	t.FlushChildren(n, false)
	n.FlushPath(Actual)

	n.override = path
	n.actualPath.set(path)
	n.special = true

	t.logger.Debug("Rebound node",
		slog.String("virtual", n.VirtualPath()),
		slog.String("actual", path),
	)

	return nil
}
