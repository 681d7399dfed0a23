// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vfs provides the path resolution and tree caching core of a virtual
// filesystem overlay.
//
// A [Tree] is a lazily populated mirror of a host directory hierarchy. Each
// [Node] knows two paths: its virtual path, that is the location as seen by
// the guest, and its actual path, that is the host location backing it. Any
// subtree can be rebound to another host location with [Tree.SetActualPath].
// Directory listings are read on demand from the [Host] and can be reclaimed
// with [Tree.FlushChildren] as long as nobody holds a [Ref] on a node.
//
// The tree is not safe for concurrent use. All operations are expected to be
// called from a single goroutine.
package vfs
