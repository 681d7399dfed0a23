// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hostfs

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/fs"
	"unsafe"

	"github.com/aibor/vfstree/internal/vfs"
	"golang.org/x/sys/unix"
)

const direntBufSize = 8192

// Offsets into a linux_dirent64 record as returned by getdents64(2).
const (
	direntInoOffset    = unsafe.Offsetof(unix.Dirent{}.Ino)
	direntReclenOffset = unsafe.Offsetof(unix.Dirent{}.Reclen)
	direntTypeOffset   = unsafe.Offsetof(unix.Dirent{}.Type)
	direntNameOffset   = unsafe.Offsetof(unix.Dirent{}.Name)
)

type dirStream struct {
	fd   int
	path string
	buf  []byte
	pos  int
	end  int
}

func newDirStream(fd int, path string) *dirStream {
	return &dirStream{
		fd:   fd,
		path: path,
		buf:  make([]byte, direntBufSize),
	}
}

// Next returns the next directory entry, including "." and "..".
func (d *dirStream) Next() (vfs.DirEntry, error) {
	for {
		if d.pos >= d.end {
			n, err := unix.Getdents(d.fd, d.buf)
			if err != nil {
				return vfs.DirEntry{}, &fs.PathError{Op: "getdents", Path: d.path, Err: err}
			}

			if n <= 0 {
				return vfs.DirEntry{}, io.EOF
			}

			d.pos, d.end = 0, n
		}

		entry, reclen, ok := parseDirent(d.buf[d.pos:d.end])
		if reclen == 0 {
			return vfs.DirEntry{}, &fs.PathError{Op: "getdents", Path: d.path, Err: unix.EIO}
		}

		d.pos += reclen

		if ok {
			return entry, nil
		}
	}
}

// Close closes the directory file descriptor.
func (d *dirStream) Close() error {
	if d.fd < 0 {
		return nil
	}

	err := unix.Close(d.fd)
	d.fd = -1

	if err != nil {
		return &fs.PathError{Op: "close", Path: d.path, Err: err}
	}

	return nil
}

// parseDirent decodes the record at the start of buf. It returns the record
// length, which is 0 for a malformed record. ok is false for records that do
// not describe an existing entry.
func parseDirent(buf []byte) (vfs.DirEntry, int, bool) {
	if len(buf) < int(direntNameOffset) {
		return vfs.DirEntry{}, 0, false
	}

	reclen := int(binary.NativeEndian.Uint16(buf[direntReclenOffset:]))
	if reclen < int(direntNameOffset) || reclen > len(buf) {
		return vfs.DirEntry{}, 0, false
	}

	if binary.NativeEndian.Uint64(buf[direntInoOffset:]) == 0 {
		return vfs.DirEntry{}, reclen, false
	}

	name := buf[direntNameOffset:reclen]
	if idx := bytes.IndexByte(name, 0); idx >= 0 {
		name = name[:idx]
	}

	entry := vfs.DirEntry{
		Name: string(name),
		Type: vfs.Type(buf[direntTypeOffset]),
	}

	return entry, reclen, true
}
