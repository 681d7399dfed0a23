// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

// initialLinkBufSize is the first buffer size tried for reading link
// targets. It is doubled until the target fits.
const initialLinkBufSize = 256

// SymlinkTarget returns the target of a symlink node. It is read from the
// host on first access and cached until the actual path of the node changes.
func (t *Tree) SymlinkTarget(n *Node) (string, error) {
	if !n.IsSymlink() {
		return "", newPathError("readlink", n.VirtualPath(), ErrInvalid)
	}

	if target, ok := n.symlinkTarget.get(); ok {
		return target, nil
	}

	actualPath := n.ActualPath()

	for size := initialLinkBufSize; ; size *= 2 {
		buf := make([]byte, size)

		length, err := t.host.Readlink(actualPath, buf)
		if err != nil {
			//nolint:wrapcheck
			return "", err
		}

		if length < size {
			target := string(buf[:length])
			n.symlinkTarget.set(target)

			return target, nil
		}
	}
}
