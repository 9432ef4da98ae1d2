package indentation

// MaxBraceDepth is the deepest brace nesting allowed in a file: the class
// body, a method body and one block inside it.
const MaxBraceDepth = 3

// ExceedsBraceDepth reports whether the running depth of '{' minus '}' ever
// goes above MaxBraceDepth. All other characters, including braces inside
// string literals, are treated alike.
func ExceedsBraceDepth(filtered string) bool {
	nestingLevel := 0

	for _, r := range braces(filtered) {
		if r == '}' {
			nestingLevel--
			continue
		}

		nestingLevel++
		if nestingLevel > MaxBraceDepth {
			return true
		}
	}

	return false
}

func braces(text string) []rune {
	out := make([]rune, 0, len(text)/8)

	for _, r := range text {
		if r == '{' || r == '}' {
			out = append(out, r)
		}
	}

	return out
}
