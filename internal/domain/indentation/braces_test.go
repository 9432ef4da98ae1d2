package indentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExceedsBraceDepth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"class and method", "class A { void f() { } }", false},
		{"one block in method", "class A { void f() { if (a) { x(); } } }", false},
		{"sequential blocks", "class A { void f() { if (a) { } while (b) { } } }", false},
		{"nested blocks", "class A { void f() { if (a) { for (;;) { } } } }", true},
		{"nested plain blocks", "class A { void f() { { { } } } }", true},
		{"braces in string literals count", `class A { void f() { s = "{{"; } }`, true},
		{"unbalanced closing braces lower depth", "} } } class A { void f() { { { } } } }", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExceedsBraceDepth(tt.text))
		})
	}
}
