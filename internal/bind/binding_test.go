// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bind_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/vfstree/internal/bind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinding(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		value       string
		expected    bind.Binding
		expectedErr error
	}{
		{
			name:     "host only",
			value:    "/usr/bin",
			expected: bind.Binding{Host: "/usr/bin", Guest: "/usr/bin"},
		},
		{
			name:     "host and guest",
			value:    "/usr/bin:/bin",
			expected: bind.Binding{Host: "/usr/bin", Guest: "/bin"},
		},
		{
			name:     "cleaned",
			value:    "/usr//bin/:/bin/../sbin/",
			expected: bind.Binding{Host: "/usr/bin", Guest: "/sbin"},
		},
		{
			name:     "relative host",
			value:    "testdata:/data",
			expected: bind.Binding{Host: filepath.Join(cwd, "testdata"), Guest: "/data"},
		},
		{
			name:     "empty guest",
			value:    "/etc:",
			expected: bind.Binding{Host: "/etc", Guest: "/etc"},
		},
		{
			name:        "empty",
			value:       "",
			expectedErr: bind.ErrEmptyPath,
		},
		{
			name:        "empty host",
			value:       ":/bin",
			expectedErr: bind.ErrEmptyPath,
		},
		{
			name:        "relative guest",
			value:       "/usr/bin:bin",
			expectedErr: bind.ErrRelativePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := bind.ParseBinding(tt.value)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				require.ErrorIs(t, err, &bind.Error{})

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestBindingString(t *testing.T) {
	assert.Equal(t, "/etc", bind.Binding{Host: "/etc", Guest: "/etc"}.String())
	assert.Equal(t, "/usr/bin:/bin", bind.Binding{Host: "/usr/bin", Guest: "/bin"}.String())
}

func TestList(t *testing.T) {
	var list bind.List

	require.NoError(t, list.Set("/usr/bin:/bin"))
	require.NoError(t, list.Set("/etc"))
	require.ErrorIs(t, list.Set("/tmp:tmp"), bind.ErrRelativePath)

	expected := bind.List{
		{Host: "/usr/bin", Guest: "/bin"},
		{Host: "/etc", Guest: "/etc"},
	}
	assert.Equal(t, expected, list)
	assert.Equal(t, "/usr/bin:/bin,/etc", list.String())
	assert.Equal(t, "host[:guest]", list.Type())
}
