// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Type is the kind of filesystem object a [Node] represents. The values
// match the d_type codes reported by getdents(2).
type Type uint8

const (
	TypeUnknown     Type = unix.DT_UNKNOWN
	TypeFIFO        Type = unix.DT_FIFO
	TypeCharDevice  Type = unix.DT_CHR
	TypeDirectory   Type = unix.DT_DIR
	TypeBlockDevice Type = unix.DT_BLK
	TypeRegular     Type = unix.DT_REG
	TypeSymlink     Type = unix.DT_LNK
	TypeSocket      Type = unix.DT_SOCK
)

func (t Type) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	case TypeBlockDevice:
		return "block dev."
	case TypeCharDevice:
		return "char. dev."
	case TypeFIFO:
		return "fifo"
	case TypeSocket:
		return "socket"
	default:
		return fmt.Sprintf("unknown (%x)", uint8(t))
	}
}
