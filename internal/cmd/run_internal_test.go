// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aibor/vfstree/internal/vfs"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
		expectedOutput   string
	}{
		{
			name: "no error",
		},
		{
			name:             "parse args error",
			err:              &ParseArgsError{msg: "arguments", err: assert.AnError},
			expectedExitCode: ExitUsage,
			expectedOutput: "Error [vfstree]: arguments: " +
				"assert.AnError general error for testing\n" +
				"Run 'vfstree --help' for usage.\n",
		},
		{
			name:             "path error",
			err:              &vfs.PathError{Op: "resolve", Path: "/x", Err: vfs.ErrNotFound},
			expectedExitCode: ExitError,
			expectedOutput:   "Error [vfstree]: resolve /x: no such file or directory\n",
		},
		{
			name:             "any error",
			err:              assert.AnError,
			expectedExitCode: ExitError,
			expectedOutput: "Error [vfstree]: " +
				"assert.AnError general error for testing\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdErr bytes.Buffer
			actualExitCode := handleError(tt.err, &stdErr)

			assert.Equal(t, tt.expectedExitCode, actualExitCode,
				"exit code should be as expected")
			assert.Equal(t, tt.expectedOutput, stdErr.String(),
				"stderr output should be as expected")
		})
	}
}

func TestDepthValue(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    int
		expectedErr error
	}{
		{
			name:     "zero",
			input:    "0",
			expected: 0,
		},
		{
			name:     "unlimited",
			input:    "-1",
			expected: -1,
		},
		{
			name:     "max",
			input:    "10",
			expected: 10,
		},
		{
			name:        "too low",
			input:       "-2",
			expected:    3,
			expectedErr: ErrValueOutOfRange,
		},
		{
			name:        "too high",
			input:       "11",
			expected:    3,
			expectedErr: ErrValueOutOfRange,
		},
		{
			name:        "not a number",
			input:       "deep",
			expected:    3,
			expectedErr: strconv.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := 3
			value := &depthValue{value: &depth, max: 10}

			err := value.Set(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, depth)
			assert.Equal(t, "depth", value.Type())
		})
	}
}

func TestWithEnvArgs(t *testing.T) {
	t.Setenv(EnvVar, " --debug  -r /srv ")

	expected := []string{"--debug", "-r", "/srv", "resolve", "/bin"}
	assert.Equal(t, expected, WithEnvArgs([]string{"resolve", "/bin"}))
}

var guestFiles = fstest.MapFS{
	"srv/guest/usr/lib/libc.so": &fstest.MapFile{Data: []byte("ELF"), Mode: 0o755},
}

func newTestApp() (*app, *bytes.Buffer, *bytes.Buffer) {
	host := vfs.NewMemHost().
		Touch("/srv/guest/bin/sh", "/srv/guest/usr/lib/libc.so", "/opt/tools/run").
		Symlink("usr/lib", "/srv/guest/lib")

	var stdout, stderr bytes.Buffer

	return &app{
		io: IO{
			Stdin:  strings.NewReader(""),
			Stdout: &stdout,
			Stderr: &stderr,
		},
		host: host,
		open: func(path string) (fs.File, error) {
			return guestFiles.Open(strings.TrimPrefix(path, "/"))
		},
	}, &stdout, &stderr
}

func TestAppRun(t *testing.T) {
	guest := []string{"--allow-missing", "--rootfs", "/srv/guest"}

	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStdout   string
		expectedStderr   string
	}{
		{
			name: "resolve",
			args: []string{"resolve", "/lib/libc.so", "/bin/../bin/sh"},
			expectedStdout: "" +
				"/usr/lib/libc.so\t/srv/guest/usr/lib/libc.so\tregular\n" +
				"/bin/sh\t/srv/guest/bin/sh\tregular\n",
		},
		{
			name:           "resolve nofollow",
			args:           []string{"resolve", "--nofollow", "/lib"},
			expectedStdout: "/lib\t/srv/guest/lib\tsymlink\n",
		},
		{
			name:           "resolve create",
			args:           []string{"resolve", "--create", "/usr/new"},
			expectedStdout: "/usr/new\t/srv/guest/usr/new\tunknown (0)\n",
		},
		{
			name:           "resolve from",
			args:           []string{"resolve", "--from", "/usr", "lib/libc.so"},
			expectedStdout: "/usr/lib/libc.so\t/srv/guest/usr/lib/libc.so\tregular\n",
		},
		{
			name:             "resolve missing",
			args:             []string{"resolve", "/bin/bash"},
			expectedExitCode: ExitError,
			expectedStderr:   "Error [vfstree]: resolve /bin/bash: no such file or directory\n",
		},
		{
			name:             "resolve without path",
			args:             []string{"resolve"},
			expectedExitCode: ExitUsage,
			expectedStderr:   "requires at least 1 arg(s)",
		},
		{
			name:             "unknown flag",
			args:             []string{"resolve", "--follow", "/bin"},
			expectedExitCode: ExitUsage,
			expectedStderr:   "unknown flag: --follow",
		},
		{
			name:             "unknown command",
			args:             []string{"mount"},
			expectedExitCode: ExitUsage,
			expectedStderr:   `unknown command "mount" for "vfstree"`,
		},
		{
			name:             "invalid depth",
			args:             []string{"tree", "--depth", "-5"},
			expectedExitCode: ExitUsage,
			expectedStderr:   ErrValueOutOfRange.Error(),
		},
		{
			name: "tree",
			args: []string{"tree", "/usr"},
			expectedStdout: "" +
				"usr [type: directory; actual path: /srv/guest/usr; virtual path: /usr; evaluator: no; special: false]\n" +
				"  lib [type: directory; actual path: -; virtual path: -; evaluator: no; special: false]\n",
		},
		{
			name: "tree depth 0",
			args: []string{"tree", "--depth", "0", "/usr"},
			expectedStdout: "" +
				"usr [type: directory; actual path: -; virtual path: -; evaluator: no; special: false]\n",
		},
		{
			name: "binds",
			args: []string{"--bind", "/opt/tools:/tools", "resolve", "/tools/run"},
			expectedStdout: "" +
				"/tools/run\t/opt/tools/run\tregular\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, stderr := newTestApp()

			args := append(append([]string{}, guest...), tt.args...)

			exitCode := app.run(context.Background(), args)
			assert.Equal(t, tt.expectedExitCode, exitCode, "exit code")
			assert.Equal(t, tt.expectedStdout, stdout.String(), "stdout")

			if tt.expectedStderr == "" {
				assert.Empty(t, stderr.String(), "stderr")
			} else {
				assert.Contains(t, stderr.String(), tt.expectedStderr, "stderr")
			}
		})
	}
}

func TestAppRunMetrics(t *testing.T) {
	app, _, stderr := newTestApp()

	exitCode := app.run(context.Background(), []string{
		"--allow-missing", "--metrics", "resolve", "/srv/guest/lib/libc.so",
	})
	require.Equal(t, ExitOK, exitCode, stderr.String())

	output := stderr.String()
	assert.Contains(t, output, "# TYPE vfstree_resolutions_total counter\n")
	assert.Contains(t, output, "vfstree_resolutions_total 2\n", "from and path")
	assert.Contains(t, output, "vfstree_symlinks_followed_total 1\n")
}

func TestAppRunConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "vfstree.yaml")
	content := "rootfs: /srv/guest\nbinds:\n  - host: /opt/tools\n    guest: /bin\nallowMissing: true\n"
	require.NoError(t, os.WriteFile(config, []byte(content), 0o600))

	app, stdout, stderr := newTestApp()

	exitCode := app.run(context.Background(), []string{
		"--config", config, "resolve", "/bin/run", "/lib",
	})
	require.Equal(t, ExitOK, exitCode, stderr.String())

	expected := "" +
		"/bin/run\t/opt/tools/run\tregular\n" +
		"/usr/lib\t/srv/guest/usr/lib\tdirectory\n"
	assert.Equal(t, expected, stdout.String())
}

func TestAppRunExport(t *testing.T) {
	tests := []struct {
		name         string
		flags        []string
		expectedMode cpio.FileMode
		expectedBody string
	}{
		{
			name:         "tree only",
			expectedMode: cpio.TypeSymlink,
			expectedBody: "/srv/guest/usr/lib/libc.so",
		},
		{
			name:         "with content",
			flags:        []string{"--content"},
			expectedMode: cpio.TypeReg,
			expectedBody: "ELF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, stderr := newTestApp()

			args := []string{"--allow-missing", "--rootfs", "/srv/guest", "export"}
			args = append(append(args, tt.flags...), "/usr")

			exitCode := app.run(context.Background(), args)
			require.Equal(t, ExitOK, exitCode, stderr.String())

			names := []string{}
			reader := cpio.NewReader(stdout)

			for {
				hdr, err := reader.Next()
				if errors.Is(err, io.EOF) {
					break
				}

				require.NoError(t, err)

				names = append(names, hdr.Name)

				if hdr.Name != "lib/libc.so" {
					continue
				}

				body, err := io.ReadAll(reader)
				require.NoError(t, err)

				if hdr.Linkname != "" {
					body = []byte(hdr.Linkname)
				}

				assert.Equal(t, tt.expectedMode, hdr.Mode&^cpio.ModePerm)
				assert.Equal(t, tt.expectedBody, string(body))
			}

			assert.Equal(t, []string{".", "lib", "lib/libc.so"}, names)
		})
	}
}
