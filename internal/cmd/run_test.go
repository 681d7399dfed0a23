// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/vfstree/internal/cmd"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	guest := t.TempDir()
	tools := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(guest, "usr", "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(guest, "usr", "bin", "sh"), []byte("#!"), 0o755))
	require.NoError(t, os.Symlink("usr/bin", filepath.Join(guest, "bin")))
	require.NoError(t, os.WriteFile(filepath.Join(tools, "run"), nil, 0o755))

	flags := []string{"-r", guest, "-b", tools + ":/opt/tools"}

	t.Run("resolve", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		args := append(append([]string{}, flags...), "resolve", "/bin/sh", "/opt/tools/run")
		exitCode := cmd.Run(context.Background(), args, cmd.IO{Stdout: &stdout, Stderr: &stderr})
		require.Equal(t, cmd.ExitOK, exitCode, stderr.String())

		expected := "" +
			"/usr/bin/sh\t" + filepath.Join(guest, "usr", "bin", "sh") + "\tregular\n" +
			"/opt/tools/run\t" + filepath.Join(tools, "run") + "\tregular\n"
		assert.Equal(t, expected, stdout.String())
	})

	t.Run("export", func(t *testing.T) {
		var stderr bytes.Buffer

		output := filepath.Join(t.TempDir(), "usr.cpio")

		args := append(append([]string{}, flags...), "export", "--content", "-o", output, "/usr")
		exitCode := cmd.Run(context.Background(), args, cmd.IO{Stderr: &stderr})
		require.Equal(t, cmd.ExitOK, exitCode, stderr.String())

		file, err := os.Open(output)
		require.NoError(t, err)

		defer file.Close()

		reader := cpio.NewReader(file)
		names := []string{}

		for {
			hdr, err := reader.Next()
			if err != nil {
				break
			}

			names = append(names, hdr.Name)
		}

		assert.Equal(t, []string{".", "bin", "bin/sh"}, names)
	})

	t.Run("missing host path", func(t *testing.T) {
		var stderr bytes.Buffer

		missing := filepath.Join(guest, "missing")

		exitCode := cmd.Run(context.Background(), []string{"-b", missing, "tree"}, cmd.IO{Stderr: &stderr})
		assert.Equal(t, cmd.ExitError, exitCode)
		assert.Contains(t, stderr.String(), "host path does not exist")
	})
}
