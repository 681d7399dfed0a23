// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI entry point for vfstree. It handles flag
// parsing, tree setup from bindings, error reporting and exit codes.
package cmd
