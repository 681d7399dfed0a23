// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hostfs implements [vfs.Host] for the Linux file system the process
// runs on.
//
// Directories are read with getdents(2), so entry types are taken from the
// kernel without an additional stat call per entry.
package hostfs
