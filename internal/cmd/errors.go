// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ErrValueOutOfRange = errors.New("value is outside of range")

// ParseArgsError wraps errors about invalid command line usage.
type ParseArgsError struct {
	msg string
	err error
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}

func flagError(_ *cobra.Command, err error) error {
	return &ParseArgsError{msg: "flags", err: err}
}

// usageArgs wraps the errors of the given validator in [ParseArgsError].
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := validate(cmd, args)
		if err != nil {
			return &ParseArgsError{msg: "arguments", err: err}
		}

		return nil
	}
}
