// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// FillChildren merges the entries of the host directory backing dir into its
// children. It does nothing if this has been done already.
//
// Entries that already exist as children are kept as they are. Unless they
// are special or were kept by [Tree.FlushChildren], this is logged as an
// anomaly. The node is marked as filled even if reading the entries fails
// midway, so the tree might be incomplete in this case. The error is
// returned anyway.
func (t *Tree) FillChildren(dir *Node) (err error) {
	if !dir.IsDir() {
		return newPathError("fill", dir.VirtualPath(), ErrNotDir)
	}

	if dir.childrenFilled {
		return nil
	}

	actualPath := dir.ActualPath()

	stream, err := t.host.OpenDir(actualPath)
	if err != nil {
		return fmt.Errorf("open dir: %w", err)
	}

	defer func() {
		closeErr := stream.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close dir: %w", closeErr)
		}
	}()

	defer func() {
		dir.childrenFilled = true
	}()

	t.metrics.fill()

	for {
		entry, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read dir: %w", err)
		}

		if entry.Name == "." || entry.Name == ".." {
			continue
		}

		child, exists := dir.Child(entry.Name)
		if !exists {
			CreateChild(dir, entry.Name, entry.Type)
			continue
		}

		if child.special {
			continue
		}

		if child.retained {
			child.retained = false
			continue
		}

		t.logger.Warn("Entry already filled",
			slog.String("name", entry.Name),
			slog.String("dir", actualPath),
		)
		t.metrics.anomaly()
	}
}

// FlushChildren removes the children of parent from the tree, so they are
// read from the host again on next access. Children that are special or
// still referenced are kept together with their subtrees. Children that
// contain such nodes are kept as well.
//
// It returns the number of removed nodes. If report is true, the result is
// logged.
func (t *Tree) FlushChildren(parent *Node, report bool) int {
	removed, kept := flushChildren(parent)

	t.metrics.reclaim(removed)

	if report {
		t.logger.Info("Flushed children",
			slog.String("path", parent.VirtualPath()),
			slog.Int("removed", removed),
			slog.Int("kept", kept),
		)
	}

	return removed
}

func flushChildren(parent *Node) (int, int) {
	var removed, kept int

	for _, child := range parent.Children() {
		if child.special {
			kept++
			continue
		}

		if child.refs > 1 {
			child.retained = true
			kept++

			continue
		}

		childRemoved, childKept := flushChildren(child)
		removed += childRemoved
		kept += childKept

		if child.Len() > 0 {
			child.retained = true
			continue
		}

		parent.removeChild(child)
		removed++
	}

	parent.childrenFilled = false

	return removed, kept
}
