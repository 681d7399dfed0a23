// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
)

// setupLogging replaces the default logger. Only warnings and errors are
// shown, unless debug is set.
func setupLogging(writer io.Writer, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelWarn}
	if debug {
		options.Level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(writer, options))
	slog.SetDefault(logger)

	return logger
}
