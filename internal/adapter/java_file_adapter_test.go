package adapter

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

func parseJava(t *testing.T, filename, src string) (m.SourceFile, error) {
	t.Helper()

	return NewLocalJavaFileAdapter().Parse(context.Background(), filename, []byte(src))
}

func kinds(nodes []m.Node) []m.NodeKind {
	out := make([]m.NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}

	return out
}

func TestLocalJavaFileAdapter_Parse(t *testing.T) {
	t.Run("reads primary type and methods", func(t *testing.T) {
		src, err := os.ReadFile("../../examples/conformant/Greeter.java")
		require.NoError(t, err)

		file, err := NewLocalJavaFileAdapter().Parse(context.Background(), "Greeter.java", src)
		require.NoError(t, err)

		assert.Equal(t, "Greeter", file.TypeName)
		assert.Equal(t, string(src), file.RawText)
		require.Len(t, file.PrimaryType.Methods, 3)
		assert.Equal(t, "greet", file.PrimaryType.Methods[0].Name)
		assert.Equal(t, "countVowels", file.PrimaryType.Methods[1].Name)
		assert.Equal(t, "isVowel", file.PrimaryType.Methods[2].Name)
	})

	t.Run("prefers the type named after the file", func(t *testing.T) {
		src := "class Helper { void a() {} }\npublic class Main { void b() {} void c() {} }\n"

		file, err := parseJava(t, "src/Main.java", src)
		require.NoError(t, err)
		assert.Equal(t, "Main", file.TypeName)
		assert.Len(t, file.PrimaryType.Methods, 2)
	})

	t.Run("falls back to the first top-level type", func(t *testing.T) {
		file, err := parseJava(t, "Other.java", "interface Shape { double area(); }\nclass Square {}\n")
		require.NoError(t, err)
		assert.Equal(t, "Shape", file.TypeName)
		require.Len(t, file.PrimaryType.Methods, 1)
		assert.Equal(t, m.KindOther, file.PrimaryType.Methods[0].Body.Kind)
		assert.Empty(t, file.PrimaryType.Methods[0].Body.Children)
	})

	t.Run("collects enum methods", func(t *testing.T) {
		src := "enum Color { RED, GREEN; boolean warm() { return this == RED; } }\n"

		file, err := parseJava(t, "Color.java", src)
		require.NoError(t, err)
		require.Len(t, file.PrimaryType.Methods, 1)
		assert.Equal(t, "warm", file.PrimaryType.Methods[0].Name)
	})

	t.Run("skips constructors", func(t *testing.T) {
		file, err := parseJava(t, "Point.java", "class Point { Point() { if (a) { } } }\n")
		require.NoError(t, err)
		assert.Empty(t, file.PrimaryType.Methods)
	})

	t.Run("no type declared", func(t *testing.T) {
		src, err := os.ReadFile("../../examples/empty/package-info.java")
		require.NoError(t, err)

		_, err = NewLocalJavaFileAdapter().Parse(context.Background(), "package-info.java", src)
		require.ErrorIs(t, err, ErrNoPrimaryType)
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		src, err := os.ReadFile("../../examples/invalid/Broken.java")
		require.NoError(t, err)

		_, err = NewLocalJavaFileAdapter().Parse(context.Background(), "Broken.java", src)
		require.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewLocalJavaFileAdapter().Parse(ctx, "A.java", []byte("class A {}"))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("non java file", func(t *testing.T) {
		_, err := parseJava(t, "notes.txt", "class A {}")
		require.ErrorIs(t, err, ErrUnsupportedFile)
	})
}

func TestLocalJavaFileAdapter_Lowering(t *testing.T) {
	t.Run("braceless bodies nest", func(t *testing.T) {
		src := "class A {\n  void f() {\n    for (int i = 0; i < n; i++)\n      if (i > 2) g();\n  }\n}\n"

		file, err := parseJava(t, "A.java", src)
		require.NoError(t, err)

		body := file.PrimaryType.Methods[0].Body
		require.Equal(t, []m.NodeKind{m.KindFor}, kinds(body.Children))

		loop := body.Children[0]
		assert.Equal(t, 3, loop.Line)
		require.Equal(t, []m.NodeKind{m.KindConditional}, kinds(loop.Children))
		assert.Equal(t, 4, loop.Children[0].Line)
	})

	t.Run("loop forms", func(t *testing.T) {
		src := "class A { void f() { for (;;) {} for (String s : xs) {} while (a) {} do {} while (b); } }"

		file, err := parseJava(t, "A.java", src)
		require.NoError(t, err)
		assert.Equal(t,
			[]m.NodeKind{m.KindFor, m.KindForEach, m.KindWhile, m.KindDoWhile},
			kinds(file.PrimaryType.Methods[0].Body.Children))
	})

	t.Run("catch clauses become handlers", func(t *testing.T) {
		src := "class A { void f() { try { a(); } catch (E e) { if (x) b(); } catch (F e) { } finally { if (y) c(); } } }"

		file, err := parseJava(t, "A.java", src)
		require.NoError(t, err)

		body := file.PrimaryType.Methods[0].Body
		require.Equal(t, []m.NodeKind{m.KindTry}, kinds(body.Children))

		tryNode := body.Children[0]
		assert.Equal(t, []m.NodeKind{m.KindCatch, m.KindCatch}, kinds(tryNode.Handlers))
		// catch_clause > block > if_statement
		handlerBlock := tryNode.Handlers[0].Children
		require.Len(t, handlerBlock, 1)
		assert.Equal(t, []m.NodeKind{m.KindConditional}, kinds(handlerBlock[0].Children))
		assert.Empty(t, tryNode.Handlers[1].Children)

		// The finally clause stays with the protected part; the empty-of-control
		// try block itself is pruned.
		require.Len(t, tryNode.Children, 1)
		finallyBlock := tryNode.Children[0].Children
		require.Len(t, finallyBlock, 1)
		assert.Equal(t, []m.NodeKind{m.KindConditional}, kinds(finallyBlock[0].Children))
	})

	t.Run("try with resources", func(t *testing.T) {
		src := "class A { void f() { try (R r = open()) { use(r); } catch (E e) { } } }"

		file, err := parseJava(t, "A.java", src)
		require.NoError(t, err)

		body := file.PrimaryType.Methods[0].Body
		require.Equal(t, []m.NodeKind{m.KindTry}, kinds(body.Children))
		assert.Len(t, body.Children[0].Handlers, 1)
	})

	t.Run("else if is a nested conditional", func(t *testing.T) {
		file, err := parseJava(t, "A.java", "class A { void f() { if (a) { x(); } else if (b) { y(); } } }")
		require.NoError(t, err)

		body := file.PrimaryType.Methods[0].Body
		require.Equal(t, []m.NodeKind{m.KindConditional}, kinds(body.Children))
		assert.Equal(t, []m.NodeKind{m.KindConditional}, kinds(body.Children[0].Children))
	})

	t.Run("plain statements are pruned", func(t *testing.T) {
		file, err := parseJava(t, "A.java", "class A { void f() { int x = 1; g(x); // done\n } }")
		require.NoError(t, err)
		assert.Empty(t, file.PrimaryType.Methods[0].Body.Children)
	})
}
