// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive exports a subtree of a virtual tree as archive, so the view
// a guest has on its file system can be inspected or shipped elsewhere.
//
// By default only the tree is exported. Regular files refer to the host
// objects backing them. Their content is only read if an [OpenFunc] is
// passed to [Export].
package archive
