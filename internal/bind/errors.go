// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bind

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned if a binding has no host path.
	ErrEmptyPath = errors.New("empty path")

	// ErrRelativePath is returned if a guest path is not absolute.
	ErrRelativePath = errors.New("path is not absolute")

	// ErrHostPathMissing is returned if the host path of a binding does not
	// exist.
	ErrHostPathMissing = errors.New("host path does not exist")
)

// Error wraps errors of a specific binding.
type Error struct {
	Op      string
	Binding Binding
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Binding, e.Err)
}

func (e *Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

func (e *Error) Unwrap() error {
	return e.Err
}
