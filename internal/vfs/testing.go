// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"io"
	"path"
	"slices"
	"strings"
)

type memEntry struct {
	typ    Type
	target string
}

// MemHost is an in-memory [Host] for tests.
type MemHost struct {
	entries map[string]memEntry

	// ReportUnknown makes directory streams report all entries with
	// [TypeUnknown].
	ReportUnknown bool

	// OpenErrors are returned by [MemHost.OpenDir] for the given paths.
	OpenErrors map[string]error

	// ReadErrors are returned by directory streams of the given paths after
	// all entries have been read.
	ReadErrors map[string]error

	// OpenDirCalls counts [MemHost.OpenDir] calls per path.
	OpenDirCalls map[string]int

	// ReadlinkBufSizes records the buffer sizes passed to
	// [MemHost.Readlink].
	ReadlinkBufSizes []int

	// OpenStreams is the number of directory streams not closed yet.
	OpenStreams int
}

// NewMemHost creates a new [MemHost] that contains only the root directory.
func NewMemHost() *MemHost {
	return &MemHost{
		entries: map[string]memEntry{
			"/": {typ: TypeDirectory},
		},
		OpenErrors:   map[string]error{},
		ReadErrors:   map[string]error{},
		OpenDirCalls: map[string]int{},
	}
}

// Add adds an entry of the given type. Missing parent directories are
// created.
func (h *MemHost) Add(name string, typ Type) *MemHost {
	h.add(name, memEntry{typ: typ})
	return h
}

// Mkdir adds directories.
func (h *MemHost) Mkdir(names ...string) *MemHost {
	for _, name := range names {
		h.add(name, memEntry{typ: TypeDirectory})
	}

	return h
}

// Touch adds regular files.
func (h *MemHost) Touch(names ...string) *MemHost {
	for _, name := range names {
		h.add(name, memEntry{typ: TypeRegular})
	}

	return h
}

// Symlink adds a symbolic link pointing to target.
func (h *MemHost) Symlink(target, name string) *MemHost {
	h.add(name, memEntry{typ: TypeSymlink, target: target})
	return h
}

// Remove removes the entry and everything below it.
func (h *MemHost) Remove(name string) *MemHost {
	name = path.Clean(name)
	for key := range h.entries {
		if key == name || strings.HasPrefix(key, name+"/") {
			delete(h.entries, key)
		}
	}

	return h
}

func (h *MemHost) add(name string, entry memEntry) {
	name = path.Clean(name)
	for dir := path.Dir(name); dir != "/"; dir = path.Dir(dir) {
		if _, exists := h.entries[dir]; !exists {
			h.entries[dir] = memEntry{typ: TypeDirectory}
		}
	}

	h.entries[name] = entry
}

func (h *MemHost) lookup(op, name string) (memEntry, error) {
	entry, exists := h.entries[path.Clean(name)]
	if !exists {
		return memEntry{}, newPathError(op, name, ErrNotFound)
	}

	return entry, nil
}

// OpenDir implements [Host].
func (h *MemHost) OpenDir(name string) (DirStream, error) {
	name = path.Clean(name)
	h.OpenDirCalls[name]++

	if err, exists := h.OpenErrors[name]; exists {
		return nil, err
	}

	entry, err := h.lookup("open", name)
	if err != nil {
		return nil, err
	}

	if entry.typ != TypeDirectory {
		return nil, newPathError("open", name, ErrNotDir)
	}

	entries := []DirEntry{{".", TypeDirectory}, {"..", TypeDirectory}}

	for key, child := range h.entries {
		if key == "/" || path.Dir(key) != name {
			continue
		}

		typ := child.typ
		if h.ReportUnknown {
			typ = TypeUnknown
		}

		entries = append(entries, DirEntry{Name: path.Base(key), Type: typ})
	}

	slices.SortFunc(entries[2:], func(a, b DirEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	h.OpenStreams++

	return &memDirStream{
		host:    h,
		entries: entries,
		err:     h.ReadErrors[name],
	}, nil
}

// Readlink implements [Host].
func (h *MemHost) Readlink(name string, buf []byte) (int, error) {
	h.ReadlinkBufSizes = append(h.ReadlinkBufSizes, len(buf))

	entry, err := h.lookup("readlink", name)
	if err != nil {
		return 0, err
	}

	if entry.typ != TypeSymlink {
		return 0, newPathError("readlink", name, ErrInvalid)
	}

	return copy(buf, entry.target), nil
}

// Lstat implements [Host].
func (h *MemHost) Lstat(name string) (Type, error) {
	entry, err := h.lookup("lstat", name)
	if err != nil {
		return TypeUnknown, err
	}

	return entry.typ, nil
}

type memDirStream struct {
	host    *MemHost
	entries []DirEntry
	err     error
	closed  bool
}

func (s *memDirStream) Next() (DirEntry, error) {
	if len(s.entries) == 0 {
		if s.err != nil {
			return DirEntry{}, s.err
		}

		return DirEntry{}, io.EOF
	}

	entry := s.entries[0]
	s.entries = s.entries[1:]

	return entry, nil
}

func (s *memDirStream) Close() error {
	if !s.closed {
		s.closed = true
		s.host.OpenStreams--
	}

	return nil
}
