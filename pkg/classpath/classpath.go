// SPDX-License-Identifier: MPL-2.0

// Package classpath models the ordered search path a JVM consults to resolve
// classes. A ClassPath is an immutable value: operations that change it
// return a new ClassPath.
package classpath

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// EnvVar is the environment variable read by Current.
const EnvVar = "CLASSPATH"

// Separator is the path-list separator for the host OS (':' or ';').
const Separator = string(os.PathListSeparator)

// ClassPath is an ordered list of class path entries (directories, archives
// or wildcard patterns such as "lib/*"). The zero value is an empty class
// path.
type ClassPath struct {
	entries []string
}

// New parses a path-list string using the host separator. Surrounding
// whitespace and matching quotes are trimmed from each entry and empty
// entries are dropped. Entries are otherwise kept as given.
func New(pathList string) ClassPath {
	var entries []string
	for _, raw := range filepath.SplitList(pathList) {
		if e := normalize(raw); e != "" {
			entries = append(entries, e)
		}
	}
	return ClassPath{entries: entries}
}

// Of builds a ClassPath from individual entries.
func Of(entries ...string) ClassPath {
	cp := ClassPath{}
	for _, raw := range entries {
		if e := normalize(raw); e != "" {
			cp.entries = append(cp.entries, e)
		}
	}
	return cp
}

// Current returns the class path inherited from the environment.
func Current() ClassPath {
	return New(os.Getenv(EnvVar))
}

// Entries returns a copy of the entries in order.
func (cp ClassPath) Entries() []string {
	return slices.Clone(cp.entries)
}

// Len returns the number of entries.
func (cp ClassPath) Len() int { return len(cp.entries) }

// IsEmpty reports whether the class path has no entries.
func (cp ClassPath) IsEmpty() bool { return len(cp.entries) == 0 }

// Contains reports whether entry is present, compared after normalization.
func (cp ClassPath) Contains(entry string) bool {
	return slices.Contains(cp.entries, normalize(entry))
}

// Join returns a ClassPath with the entries of others appended. Entries
// already present are skipped, so the first occurrence keeps its position.
func (cp ClassPath) Join(others ...ClassPath) ClassPath {
	out := ClassPath{entries: slices.Clone(cp.entries)}
	for _, o := range others {
		for _, e := range o.entries {
			if !slices.Contains(out.entries, e) {
				out.entries = append(out.entries, e)
			}
		}
	}
	return out
}

// Equal reports whether two class paths have the same entries in the same order.
func (cp ClassPath) Equal(other ClassPath) bool {
	return slices.Equal(cp.entries, other.entries)
}

// String renders the class path with the host separator.
func (cp ClassPath) String() string {
	return strings.Join(cp.entries, Separator)
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
