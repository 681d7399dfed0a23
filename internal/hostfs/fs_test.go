// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hostfs_test

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aibor/vfstree/internal/hostfs"
	"github.com/aibor/vfstree/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sys/unix"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("content"), 0o600))
	require.NoError(t, os.Symlink("file", filepath.Join(dir, "link")))
	require.NoError(t, unix.Mkfifo(filepath.Join(dir, "fifo"), 0o600))

	return dir
}

func readAll(t *testing.T, stream vfs.DirStream) map[string]vfs.Type {
	t.Helper()

	entries := map[string]vfs.Type{}

	for {
		entry, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return entries
		}

		require.NoError(t, err)

		entries[entry.Name] = entry.Type
	}
}

func TestOpenDir(t *testing.T) {
	dir := setupDir(t)

	stream, err := hostfs.FS{}.OpenDir(dir)
	require.NoError(t, err)

	entries := readAll(t, stream)
	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close(), "second close must be no-op")

	delete(entries, ".")
	delete(entries, "..")

	// Some file systems do not report types in directory entries.
	for name, typ := range entries {
		if typ == vfs.TypeUnknown {
			actual, err := hostfs.FS{}.Lstat(filepath.Join(dir, name))
			require.NoError(t, err)

			entries[name] = actual
		}
	}

	expected := map[string]vfs.Type{
		"sub":  vfs.TypeDirectory,
		"file": vfs.TypeRegular,
		"link": vfs.TypeSymlink,
		"fifo": vfs.TypeFIFO,
	}
	assert.Equal(t, expected, entries)
}

func TestOpenDirManyEntries(t *testing.T) {
	dir := t.TempDir()

	// Enough entries to need more than one getdents call.
	const count = 500

	for idx := range count {
		name := fmt.Sprintf("%s-%03d", strings.Repeat("n", 40), idx)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	stream, err := hostfs.FS{}.OpenDir(dir)
	require.NoError(t, err)

	defer stream.Close()

	entries := readAll(t, stream)
	assert.Len(t, entries, count+2)
}

func TestOpenDirErrors(t *testing.T) {
	dir := setupDir(t)

	tests := []struct {
		name        string
		path        string
		expectedErr error
	}{
		{
			name:        "missing",
			path:        filepath.Join(dir, "missing"),
			expectedErr: vfs.ErrNotFound,
		},
		{
			name:        "regular file",
			path:        filepath.Join(dir, "file"),
			expectedErr: vfs.ErrNotDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hostfs.FS{}.OpenDir(tt.path)
			require.ErrorIs(t, err, tt.expectedErr)

			var pathErr *fs.PathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, tt.path, pathErr.Path)
		})
	}
}

func TestReadlink(t *testing.T) {
	dir := setupDir(t)
	host := hostfs.FS{}

	buf := make([]byte, 16)
	n, err := host.Readlink(filepath.Join(dir, "link"), buf)
	require.NoError(t, err)
	assert.Equal(t, "file", string(buf[:n]))

	t.Run("truncated", func(t *testing.T) {
		buf := make([]byte, 2)
		n, err := host.Readlink(filepath.Join(dir, "link"), buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
	})

	t.Run("not a link", func(t *testing.T) {
		_, err := host.Readlink(filepath.Join(dir, "file"), buf)
		require.ErrorIs(t, err, vfs.ErrInvalid)
	})
}

func TestLstat(t *testing.T) {
	dir := setupDir(t)

	tests := []struct {
		name     string
		expected vfs.Type
	}{
		{"sub", vfs.TypeDirectory},
		{"file", vfs.TypeRegular},
		{"link", vfs.TypeSymlink},
		{"fifo", vfs.TypeFIFO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := hostfs.FS{}.Lstat(filepath.Join(dir, tt.name))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typ)
		})
	}

	t.Run("char device", func(t *testing.T) {
		typ, err := hostfs.FS{}.Lstat("/dev/null")
		require.NoError(t, err)
		assert.Equal(t, vfs.TypeCharDevice, typ)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := hostfs.FS{}.Lstat(filepath.Join(dir, "missing"))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestTreeOnHost(t *testing.T) {
	dir := setupDir(t)
	bound := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bound, "inner"), nil, 0o600))

	tree := vfs.NewTree(hostfs.FS{})
	_, err := tree.Bind("/", dir)
	require.NoError(t, err)

	_, err = tree.Bind("/sub/mnt", bound)
	require.NoError(t, err)

	root := tree.Root()

	node, err := tree.Resolve(root, root, "/link", 0)
	require.NoError(t, err)
	assert.Equal(t, "/file", node.VirtualPath())
	assert.Equal(t, filepath.Join(dir, "file"), node.ActualPath())

	node, err = tree.Resolve(root, root, "/sub/mnt/inner", 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bound, "inner"), node.ActualPath())
	assert.Equal(t, vfs.TypeRegular, node.Type())
}
