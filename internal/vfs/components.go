// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"strings"
)

const separator = '/'

func isAbs(path string) bool {
	return len(path) > 0 && path[0] == separator
}

// SplitPath splits path into its components. Absolute paths get a leading
// "/" component. Empty components are dropped.
func SplitPath(path string) []string {
	var components []string

	if isAbs(path) {
		components = append(components, string(separator))
	}

	for iter := newComponentIter(path); iter.next(); {
		components = append(components, iter.component())
	}

	return components
}

// JoinComponents joins components with "/" without doubling separators, so
// a leading "/" component results in an absolute path.
func JoinComponents(components []string) string {
	var builder strings.Builder

	for idx, component := range components {
		if idx > 0 && !strings.HasSuffix(components[idx-1], string(separator)) {
			builder.WriteByte(separator)
		}

		builder.WriteString(component)
	}

	return builder.String()
}

// componentIter iterates the components of a path string in place.
type componentIter struct {
	path  string
	start int
	end   int
}

func newComponentIter(path string) *componentIter {
	return &componentIter{path: path}
}

// next advances to the next non-empty component. It returns false when the
// path is exhausted.
func (i *componentIter) next() bool {
	start := i.end
	for start < len(i.path) && i.path[start] == separator {
		start++
	}

	if start == len(i.path) {
		i.start, i.end = start, start
		return false
	}

	end := strings.IndexByte(i.path[start:], separator)
	if end < 0 {
		end = len(i.path)
	} else {
		end += start
	}

	i.start, i.end = start, end

	return true
}

func (i *componentIter) component() string {
	return i.path[i.start:i.end]
}

// last returns true if the current component ends the path. A component
// followed by a trailing separator is not the last one.
func (i *componentIter) last() bool {
	return i.end == len(i.path)
}

// trailingSeparator returns true if the path ends with a separator after at
// least one component.
func (i *componentIter) trailingSeparator() bool {
	return len(i.path) > 1 && i.path[len(i.path)-1] == separator
}
