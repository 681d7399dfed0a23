// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"log/slog"
)

// Flag modifies the behavior of [Tree.Resolve].
type Flag uint8

const (
	// NoFollow prevents following a symbolic link in the final component.
	NoFollow Flag = 1 << iota
	// Create creates the final component if it does not exist.
	Create
)

// MaxSymlinks is the maximum number of symbolic links followed during a
// single resolution.
const MaxSymlinks = 20

// Resolve walks path through the tree and returns the node it names.
//
// Absolute paths are resolved from root, relative paths from from. ".." never
// leaves root. Directories are filled from the host as needed. Symbolic links
// are followed, except for the final component if [NoFollow] is given. Links
// are resolved relative to the directory they are in.
//
// If the final component does not exist and [Create] is given, a node of
// unknown type is created for it and returned. A trailing separator makes the
// last component an intermediate one, so it must be a directory, links in it
// are always followed and it is never created.
func (t *Tree) Resolve(root, from *Node, path string, flags Flag) (*Node, error) {
	t.metrics.resolution()

	node, _, err := t.resolve(root, from, path, flags, 0)
	if err != nil {
		t.metrics.resolveFailure(err)
		return nil, newPathError("resolve", path, err)
	}

	return node, nil
}

// resolve does the actual work for [Tree.Resolve]. hops is the number of
// links followed so far in the whole resolution. The updated count is
// returned.
func (t *Tree) resolve(
	root, from *Node,
	path string,
	flags Flag,
	hops int,
) (*Node, int, error) {
	current := from
	if isAbs(path) {
		current = root
	}

	iter := newComponentIter(path)

	for iter.next() {
		name, last := iter.component(), iter.last()

		err := t.requireDir(current)
		if err != nil {
			return nil, hops, err
		}

		switch name {
		case ".":
			continue
		case "..":
			if current != root && current.parent != nil {
				current = current.parent
			}

			continue
		}

		child, err := t.lookup(current, name)
		if child == nil {
			switch {
			case err != nil && (!last || flags&Create == 0):
				return nil, hops, err
			case !last:
				return nil, hops, ErrNotDir
			case flags&Create == 0:
				return nil, hops, ErrNotFound
			}

			t.logger.Debug("Create node",
				slog.String("dir", current.VirtualPath()),
				slog.String("name", name),
			)

			return CreateChild(current, name, TypeUnknown), hops, nil
		}

		follow := !last || flags&NoFollow == 0
		if follow && t.isSymlink(child) {
			current, hops, err = t.follow(root, child, hops)
			if err != nil {
				return nil, hops, err
			}

			continue
		}

		current = child
	}

	if iter.trailingSeparator() {
		err := t.requireDir(current)
		if err != nil {
			return nil, hops, err
		}
	}

	return current, hops, nil
}

// requireDir returns [ErrNotDir] if node is not a directory. A node whose
// type cannot be determined is not a directory either.
func (t *Tree) requireDir(node *Node) error {
	typ, err := t.Stat(node)
	if err != nil {
		t.logger.Debug("Cannot determine node type",
			slog.String("virtual", node.VirtualPath()),
			slog.Any("error", err),
		)

		return ErrNotDir
	}

	if typ != TypeDirectory {
		return ErrNotDir
	}

	return nil
}

// lookup returns the child with the given name after filling dir. Fill
// errors are only returned if the child is not present anyway.
func (t *Tree) lookup(dir *Node, name string) (*Node, error) {
	fillErr := t.FillChildren(dir)

	child, exists := dir.Child(name)
	if !exists {
		return nil, fillErr
	}

	return child, nil
}

func (t *Tree) isSymlink(node *Node) bool {
	typ, err := t.Stat(node)
	return err == nil && typ == TypeSymlink
}

// follow resolves the target of link relative to its parent directory.
func (t *Tree) follow(root, link *Node, hops int) (*Node, int, error) {
	if hops >= MaxSymlinks {
		return nil, hops, ErrTooManyLinks
	}

	target, err := t.SymlinkTarget(link)
	if err != nil {
		return nil, hops, err
	}

	t.metrics.symlinkFollowed()

	return t.resolve(root, link.parent, target, 0, hops+1)
}
