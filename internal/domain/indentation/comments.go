// Package indentation implements the "one level of indentation" rule: the
// primary type of a Java file must not nest control-flow blocks more than one
// level deep inside any of its methods.
package indentation

import "strings"

// FilterComments drops comment-only lines and concatenates the remaining
// lines with no separator. A line is dropped when, trimmed, it starts with
// "//", "*" or "/*", or ends with "*/". Trailing comments on code lines are
// kept and no state is carried between lines, so a line such as
// `x = 1; /* note */` is dropped entirely.
func FilterComments(text string) string {
	var b strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if isCommentLine(line) {
			continue
		}

		b.WriteString(line)
	}

	return b.String()
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)

	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasSuffix(trimmed, "*/")
}
