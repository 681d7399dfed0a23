// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

// Host provides the filesystem primitives the tree is populated from. All
// paths are actual paths.
type Host interface {
	// OpenDir opens the directory at path for reading its entries.
	OpenDir(path string) (DirStream, error)

	// Readlink reads the target of the symbolic link at path into buf and
	// returns the number of bytes written. If the returned length equals
	// len(buf), the target might have been truncated.
	Readlink(path string, buf []byte) (int, error)

	// Lstat returns the type of the file at path without following a
	// trailing symbolic link.
	Lstat(path string) (Type, error)
}

// DirStream is an open directory.
type DirStream interface {
	// Next returns the next entry. It returns [io.EOF] once all entries are
	// read.
	Next() (DirEntry, error)
	Close() error
}

// DirEntry is a single directory entry as reported by the [Host].
type DirEntry struct {
	Name string
	Type Type
}
