// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hostfs

import (
	"io/fs"

	"github.com/aibor/vfstree/internal/vfs"
	"golang.org/x/sys/unix"
)

// FS is the host file system.
type FS struct{}

var _ vfs.Host = FS{}

// OpenDir opens the directory at path.
func (FS) OpenDir(path string) (vfs.DirStream, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	return newDirStream(fd, path), nil
}

// Readlink reads the target of the symbolic link at path into buf.
func (FS) Readlink(path string, buf []byte) (int, error) {
	n, err := unix.Readlink(path, buf)
	if err != nil {
		return 0, &fs.PathError{Op: "readlink", Path: path, Err: err}
	}

	return n, nil
}

// Lstat returns the type of the file at path.
func (FS) Lstat(path string) (vfs.Type, error) {
	var stat unix.Stat_t

	err := unix.Lstat(path, &stat)
	if err != nil {
		return vfs.TypeUnknown, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}

	return modeType(uint32(stat.Mode)), nil //nolint:unconvert
}

func modeType(mode uint32) vfs.Type {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		return vfs.TypeRegular
	case unix.S_IFDIR:
		return vfs.TypeDirectory
	case unix.S_IFLNK:
		return vfs.TypeSymlink
	case unix.S_IFBLK:
		return vfs.TypeBlockDevice
	case unix.S_IFCHR:
		return vfs.TypeCharDevice
	case unix.S_IFIFO:
		return vfs.TypeFIFO
	case unix.S_IFSOCK:
		return vfs.TypeSocket
	default:
		return vfs.TypeUnknown
	}
}
