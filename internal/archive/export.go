// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/vfstree/internal/vfs"
)

// ErrNotRegularFile is returned if the content opened for a regular file is
// something else.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenFunc opens the file at the given actual path for reading.
type OpenFunc func(path string) (fs.File, error)

// OpenHost opens files on the host.
func OpenHost(path string) (fs.File, error) {
	//nolint:wrapcheck
	return os.Open(path)
}

// Export writes node and everything below it into w. Entry names are
// relative to node, which itself is written as ".".
//
// Only the tree is exported by default. If open is not nil, it is used to
// read the content of regular files from their actual paths.
//
// Entries of other types than directory, symlink and regular file are
// skipped. So are entries whose type cannot be determined. The number of
// written entries is returned.
func Export(
	ctx context.Context,
	tree *vfs.Tree,
	node *vfs.Node,
	w Writer,
	open OpenFunc,
) (int, error) {
	start := node.VirtualPath()
	count := 0

	err := tree.Walk(node, func(path string, n *vfs.Node, _ int) error {
		err := ctx.Err()
		if err != nil {
			//nolint:wrapcheck
			return err
		}

		name, err := filepath.Rel(start, path)
		if err != nil {
			return fmt.Errorf("entry name: %w", err)
		}

		written, err := exportNode(tree, n, name, w, open)
		if err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}

		if written {
			count++
		}

		return nil
	})

	return count, err
}

func exportNode(
	tree *vfs.Tree,
	node *vfs.Node,
	name string,
	w Writer,
	open OpenFunc,
) (bool, error) {
	typ, err := tree.Stat(node)
	if err != nil {
		slog.Warn("Skip entry of unknown type",
			slog.String("name", name),
			slog.Any("error", err),
		)

		return false, nil
	}

	entry := Entry{
		Name:   name,
		Type:   typ,
		Actual: node.ActualPath(),
	}

	switch typ {
	case vfs.TypeDirectory:
	case vfs.TypeSymlink:
		entry.Target, err = tree.SymlinkTarget(node)
		if err != nil {
			//nolint:wrapcheck
			return false, err
		}
	case vfs.TypeRegular:
		if open != nil {
			return true, exportContent(entry, w, open)
		}
	default:
		slog.Debug("Skip unsupported entry",
			slog.String("name", name),
			slog.String("type", typ.String()),
		)

		return false, nil
	}

	return true, w.WriteEntry(entry, nil)
}

func exportContent(entry Entry, w Writer, open OpenFunc) error {
	file, err := open(entry.Actual)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	if !info.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	entry.Size = info.Size()
	entry.Perm = info.Mode().Perm()

	return w.WriteEntry(entry, file)
}
