// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/aibor/vfstree/internal/vfs"
	"github.com/cavaliergopher/cpio"
)

// ErrUnsupportedType is returned for entries that cannot be archived.
var ErrUnsupportedType = errors.New("unsupported entry type")

// Entry is a single node of an exported tree.
type Entry struct {
	// Name is the virtual path relative to the start of the export.
	Name string
	Type vfs.Type
	// Actual is the path of the backing object on the host.
	Actual string
	// Target is the content of a symbolic link.
	Target string

	// Size and Perm describe the content of a regular file. They are only
	// set if the content is exported.
	Size int64
	Perm fs.FileMode
}

// Writer receives the entries of an exported tree. content is nil unless the
// entry is a regular file whose content is exported.
type Writer interface {
	WriteEntry(entry Entry, content io.Reader) error
}

// CPIOWriter is a [Writer] producing a cpio archive in "newc" format.
//
// Regular files without content are stored as symbolic links to their actual
// path. Extracted on the same host, the archive then shows the same view as
// the tree.
type CPIOWriter struct {
	archive *cpio.Writer
}

// NewCPIOWriter creates a new [CPIOWriter] writing into w.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{archive: cpio.NewWriter(w)}
}

// Close writes the trailer. It does not close the underlying writer.
func (w *CPIOWriter) Close() error {
	//nolint:wrapcheck
	return w.archive.Close()
}

// WriteEntry adds a record for entry.
func (w *CPIOWriter) WriteEntry(entry Entry, content io.Reader) error {
	hdr, body, err := cpioRecord(entry, content)
	if err != nil {
		return fmt.Errorf("%s: %w", entry.Name, err)
	}

	err = w.archive.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header %s: %w", entry.Name, err)
	}

	if body == nil {
		return nil
	}

	_, err = io.Copy(w.archive, body)
	if err != nil {
		return fmt.Errorf("write body %s: %w", entry.Name, err)
	}

	return nil
}

// cpioRecord returns the header and body entry is stored as.
func cpioRecord(entry Entry, content io.Reader) (*cpio.Header, io.Reader, error) {
	hdr := &cpio.Header{
		Name: entry.Name,
		Mode: cpio.ModePerm,
	}

	switch entry.Type {
	case vfs.TypeDirectory:
		hdr.Mode |= cpio.TypeDir
		// Entry in parent and own ".".
		hdr.Links = 2

		return hdr, nil, nil
	case vfs.TypeSymlink:
		return symlinkRecord(hdr, entry.Target)
	case vfs.TypeRegular:
		if content == nil {
			return symlinkRecord(hdr, entry.Actual)
		}

		hdr.Mode = cpio.TypeReg | cpio.FileMode(entry.Perm.Perm())
		hdr.Size = entry.Size

		return hdr, content, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, entry.Type)
	}
}

func symlinkRecord(hdr *cpio.Header, target string) (*cpio.Header, io.Reader, error) {
	hdr.Mode |= cpio.TypeSymlink
	hdr.Size = int64(len(target))

	return hdr, strings.NewReader(target), nil
}
