// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/vfstree/internal/archive"
	"github.com/aibor/vfstree/internal/hostfs"
)

// Exit codes returned by [Run].
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run is the main entry point for the CLI command. It returns the exit code.
func Run(ctx context.Context, args []string, cfg IO) int {
	a := &app{
		io:   cfg,
		host: hostfs.FS{},
		open: archive.OpenHost,
	}

	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	if a.opts.metrics && a.session != nil {
		metricsErr := a.session.writeMetrics(a.io.Stderr)
		if metricsErr != nil {
			slog.Error("Failed to write metrics", slog.Any("error", metricsErr))
		}
	}

	return handleError(err, a.io.Stderr)
}

// handleError prints err and returns the exit code for it.
func handleError(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, &ParseArgsError{}):
		fmt.Fprintf(stderr, "Error [%s]: %v\n", name, err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", name)

		return ExitUsage
	default:
		fmt.Fprintf(stderr, "Error [%s]: %v\n", name, err)

		return ExitError
	}
}
