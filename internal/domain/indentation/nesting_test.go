package indentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

func node(kind m.NodeKind, line int, children ...m.Node) m.Node {
	return m.Node{Kind: kind, Line: line, Children: children}
}

func block(children ...m.Node) m.Node {
	return m.Node{Kind: m.KindOther, Children: children}
}

func try(line int, body m.Node, handlers ...m.Node) m.Node {
	return m.Node{Kind: m.KindTry, Line: line, Children: []m.Node{body}, Handlers: handlers}
}

func TestExceedsNesting(t *testing.T) {
	tests := []struct {
		name string
		body m.Node
		want bool
	}{
		{"empty body", block(), false},
		{"statements only", block(block(), block(block())), false},
		{"single if", block(node(m.KindConditional, 2, block())), false},
		{"sibling loops", block(node(m.KindFor, 2), node(m.KindWhile, 3), node(m.KindDoWhile, 4), node(m.KindForEach, 5)), false},
		{"if inside for", block(node(m.KindFor, 2, node(m.KindConditional, 3))), true},
		{"if deep inside plain blocks of a while", block(node(m.KindWhile, 2, block(block(block(node(m.KindConditional, 5)))))), true},
		{"loop inside catch", block(try(2, block(), node(m.KindCatch, 4, node(m.KindForEach, 5)))), true},
		{"if inside try block", block(try(2, block(node(m.KindConditional, 3)))), true},
		{"try with two plain catches", block(try(2, block(), node(m.KindCatch, 4), node(m.KindCatch, 6))), false},
		{"try inside if", block(node(m.KindConditional, 2, try(3, block()))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExceedsNesting(tt.body))
		})
	}
}

func TestFirstNestingViolation(t *testing.T) {
	t.Run("reports first over-depth construct in pre-order", func(t *testing.T) {
		body := block(
			node(m.KindConditional, 2),
			node(m.KindFor, 4, node(m.KindWhile, 5, node(m.KindConditional, 6))),
			node(m.KindWhile, 9, node(m.KindConditional, 10)),
		)

		found, ok := FirstNestingViolation(body)
		require.True(t, ok)
		assert.Equal(t, m.KindWhile, found.Kind)
		assert.Equal(t, 5, found.Line)
	})

	t.Run("siblings see the depth of their parent", func(t *testing.T) {
		body := block(
			node(m.KindFor, 2, block()),
			node(m.KindConditional, 3, block()),
		)

		_, ok := FirstNestingViolation(body)
		assert.False(t, ok)
	})
}
