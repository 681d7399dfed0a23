// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"fmt"
	"io"
	"strings"
)

const printIndent = 2

// Print writes a human readable dump of n and its descendants to w. Only
// cached paths are printed, so printing does not change the tree.
func Print(w io.Writer, n *Node) error {
	return printNode(w, n, 0)
}

func printNode(w io.Writer, n *Node, depth int) error {
	_, err := fmt.Fprintf(w, "%s%s [type: %s; actual path: %s; virtual path: %s; evaluator: %s; special: %t]\n",
		strings.Repeat(" ", depth*printIndent),
		n.name,
		n.typ,
		cachedOrDash(n, Actual),
		cachedOrDash(n, Virtual),
		yesNo(n.evaluator != nil),
		n.special,
	)
	if err != nil {
		return fmt.Errorf("print %s: %w", n.name, err)
	}

	for _, child := range n.Children() {
		err := printNode(w, child, depth+1)
		if err != nil {
			return err
		}
	}

	return nil
}

func cachedOrDash(n *Node, axis Axis) string {
	if path, ok := n.CachedPath(axis); ok {
		return path
	}

	return "-"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
