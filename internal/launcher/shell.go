// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// Shell renders the argv as a single line that a POSIX shell parses back
// into the same words. Environment and working directory are not included.
func (c *CommandLine) Shell() (string, error) {
	words := c.Argv()
	quoted := make([]string, len(words))
	for i, w := range words {
		q, err := syntax.Quote(w, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", w, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

// SplitOptions splits a JAVA_OPTS style string into words using shell
// rules: quotes group, backslashes escape, and $VAR references expand
// through env. A nil env expands nothing.
func SplitOptions(s string, env func(string) string) ([]string, error) {
	if env == nil {
		env = func(string) string { return "" }
	}
	fields, err := shell.Fields(s, env)
	if err != nil {
		return nil, fmt.Errorf("splitting options %q: %w", s, err)
	}
	return fields, nil
}
