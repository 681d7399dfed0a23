// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"strconv"
)

// depthValue is a tree depth flag. -1 is unlimited.
type depthValue struct {
	value *int
	max   int
}

func (d *depthValue) String() string {
	if d.value == nil {
		return "0"
	}

	return strconv.Itoa(*d.value)
}

func (d *depthValue) Set(s string) error {
	value, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if value < -1 || value > d.max {
		return fmt.Errorf("%d not in [-1, %d]: %w", value, d.max, ErrValueOutOfRange)
	}

	*d.value = value

	return nil
}

func (d *depthValue) Type() string {
	return "depth"
}
