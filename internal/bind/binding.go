// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bind

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Binding makes a host path visible at a guest path.
type Binding struct {
	Host  string `yaml:"host"`
	Guest string `yaml:"guest,omitempty"`
}

// ParseBinding parses a "host[:guest]" value. Relative host paths are made
// absolute based on the current working directory. If the guest path is
// omitted, the host path is used.
func ParseBinding(value string) (Binding, error) {
	host, guest, _ := strings.Cut(value, ":")

	binding := Binding{
		Host:  host,
		Guest: guest,
	}

	err := binding.normalize()
	if err != nil {
		return Binding{}, err
	}

	return binding, nil
}

func (b *Binding) normalize() error {
	if b.Host == "" {
		return &Error{Op: "parse", Binding: *b, Err: ErrEmptyPath}
	}

	host, err := filepath.Abs(b.Host)
	if err != nil {
		return &Error{Op: "parse", Binding: *b, Err: fmt.Errorf("absolute path: %w", err)}
	}

	b.Host = host

	if b.Guest == "" {
		b.Guest = host
		return nil
	}

	if !path.IsAbs(b.Guest) {
		return &Error{Op: "parse", Binding: *b, Err: ErrRelativePath}
	}

	b.Guest = path.Clean(b.Guest)

	return nil
}

// String returns the binding in "host:guest" notation.
func (b Binding) String() string {
	if b.Guest == "" || b.Guest == b.Host {
		return b.Host
	}

	return b.Host + ":" + b.Guest
}

// List is a list of [Binding]s usable as repeatable command line flag.
type List []Binding

func (l *List) String() string {
	values := make([]string, 0, len(*l))
	for _, binding := range *l {
		values = append(values, binding.String())
	}

	return strings.Join(values, ",")
}

// Set parses and appends a binding.
func (l *List) Set(value string) error {
	binding, err := ParseBinding(value)
	if err != nil {
		return err
	}

	*l = append(*l, binding)

	return nil
}

// Type returns the value type name shown in the command line help.
func (l *List) Type() string {
	return "host[:guest]"
}
