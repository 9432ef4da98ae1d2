package indentation

import m "onelevel.dev/pkg/onelevel/internal/model"

// MaxNesting is the number of control constructs a method may stack.
const MaxNesting = 1

// ExceedsNesting reports whether any control construct in body sits inside
// another one.
func ExceedsNesting(body m.Node) bool {
	_, found := FirstNestingViolation(body)

	return found
}

// FirstNestingViolation returns the first control construct, in pre-order,
// whose depth goes above MaxNesting.
func FirstNestingViolation(body m.Node) (m.Node, bool) {
	return visit(body, 0)
}

// visit walks node with depth equal to the number of enclosing control
// constructs. Depth is passed by value so siblings always see the same depth.
func visit(node m.Node, depth int) (m.Node, bool) {
	switch node.Kind {
	case m.KindConditional, m.KindFor, m.KindForEach, m.KindWhile, m.KindDoWhile, m.KindCatch:
		return enter(node, depth+1)
	case m.KindTry:
		if found, ok := enter(node, depth+1); ok {
			return found, true
		}

		// Handlers are siblings of the try block, not nested inside it.
		return visitAll(node.Handlers, depth)
	case m.KindOther:
		return visitAll(node.Children, depth)
	}

	return visitAll(node.Children, depth)
}

func enter(node m.Node, depth int) (m.Node, bool) {
	if depth > MaxNesting {
		return node, true
	}

	return visitAll(node.Children, depth)
}

func visitAll(nodes []m.Node, depth int) (m.Node, bool) {
	for _, child := range nodes {
		if found, ok := visit(child, depth); ok {
			return found, true
		}
	}

	return m.Node{}, false
}
