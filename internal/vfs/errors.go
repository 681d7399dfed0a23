// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// PathError records an error and the operation and path that caused it.
type PathError = fs.PathError

var (
	// ErrNotFound is returned if a path component does not exist and creation
	// was not requested.
	ErrNotFound = unix.ENOENT

	// ErrNotDir is returned if a non-final path component is not a directory
	// or an operation that requires a directory got something else.
	ErrNotDir = unix.ENOTDIR

	// ErrTooManyLinks is returned if more than [MaxSymlinks] symbolic links
	// are encountered during a single resolution.
	ErrTooManyLinks = unix.ELOOP

	// ErrInvalid is returned for symlink operations on non-symlink nodes and
	// for invalid arguments in general.
	ErrInvalid = unix.EINVAL

	// ErrBusy is returned if a node can not be deleted because it is still
	// referenced from outside of the tree.
	ErrBusy = unix.EBUSY
)

func newPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}
