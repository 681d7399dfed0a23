// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
	"strings"
)

// EnvVar is the environment variable that may hold default arguments.
const EnvVar = "VFSTREE_ARGS"

// WithEnvArgs returns args prepended with the whitespace separated arguments
// from [EnvVar]. Flags given on the command line come later and win.
func WithEnvArgs(args []string) []string {
	return append(strings.Fields(os.Getenv(EnvVar)), args...)
}
