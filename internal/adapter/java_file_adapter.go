package adapter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

var (
	// ErrSyntax is returned when the parser recovers from errors in the file.
	ErrSyntax = errors.New("syntax error")
	// ErrNoPrimaryType is returned when a file declares no top-level type.
	ErrNoPrimaryType = errors.New("no primary type declared")
	// ErrUnsupportedFile is returned for files without a .java extension.
	ErrUnsupportedFile = errors.New("unsupported file")
)

// JavaFileAdapter turns Java source text into the lowered syntax model the
// indentation rule works on.
type JavaFileAdapter interface {
	// Parse builds a SourceFile for filename. The file name picks the primary
	// type when several top-level types are declared.
	Parse(ctx context.Context, filename string, src []byte) (m.SourceFile, error)
}

// LocalJavaFileAdapter parses Java with tree-sitter.
type LocalJavaFileAdapter struct {
	language *tree_sitter.Language
}

// NewLocalJavaFileAdapter constructs a LocalJavaFileAdapter.
func NewLocalJavaFileAdapter() *LocalJavaFileAdapter {
	return &LocalJavaFileAdapter{
		language: tree_sitter.NewLanguage(java.Language()),
	}
}

var typeDeclarationKinds = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// Parse parses src and lowers the primary type's methods.
func (a *LocalJavaFileAdapter) Parse(ctx context.Context, filename string, src []byte) (m.SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return m.SourceFile{}, err
	}

	if !strings.EqualFold(filepath.Ext(filename), ".java") {
		return m.SourceFile{}, fmt.Errorf("parse %s: %w", filename, ErrUnsupportedFile)
	}

	// Parsers are not safe for concurrent use, so each call gets its own.
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(a.language); err != nil {
		return m.SourceFile{}, fmt.Errorf("set java language: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return m.SourceFile{}, fmt.Errorf("parse %s: %w", filename, ErrSyntax)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return m.SourceFile{}, fmt.Errorf("parse %s: line %d: %w", filename, firstErrorLine(root), ErrSyntax)
	}

	decl := primaryTypeDeclaration(root, src, filename)
	if decl == nil {
		return m.SourceFile{}, fmt.Errorf("parse %s: %w", filename, ErrNoPrimaryType)
	}

	primary := m.Type{
		Name:    declarationName(decl, src),
		Methods: methodsOf(decl, src),
	}

	return m.SourceFile{
		TypeName:    primary.Name,
		RawText:     string(src),
		PrimaryType: primary,
	}, nil
}

// primaryTypeDeclaration picks the top-level type named after the file, or
// the first top-level type when none matches.
func primaryTypeDeclaration(root *tree_sitter.Node, src []byte, filename string) *tree_sitter.Node {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var first *tree_sitter.Node

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil || !typeDeclarationKinds[child.Kind()] {
			continue
		}

		if declarationName(child, src) == base {
			return child
		}

		if first == nil {
			first = child
		}
	}

	return first
}

func declarationName(decl *tree_sitter.Node, src []byte) string {
	name := decl.ChildByFieldName("name")
	if name == nil {
		return ""
	}

	return name.Utf8Text(src)
}

// methodsOf returns the methods declared directly in the type body. Enum
// methods live one level down inside enum_body_declarations.
func methodsOf(decl *tree_sitter.Node, src []byte) []m.Method {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var methods []m.Method

	var collect func(container *tree_sitter.Node)
	collect = func(container *tree_sitter.Node) {
		for i := uint(0); i < container.NamedChildCount(); i++ {
			member := container.NamedChild(i)
			if member == nil {
				continue
			}

			switch member.Kind() {
			case "method_declaration":
				methods = append(methods, lowerMethod(member, src))
			case "enum_body_declarations":
				collect(member)
			}
		}
	}
	collect(body)

	return methods
}

func lowerMethod(decl *tree_sitter.Node, src []byte) m.Method {
	method := m.Method{
		Name: declarationName(decl, src),
		Line: lineOf(decl),
		Body: m.Node{Kind: m.KindOther, Line: lineOf(decl)},
	}

	// Abstract and interface methods have no body.
	if body := decl.ChildByFieldName("body"); body != nil {
		if lowered, ok := lower(body); ok {
			method.Body = lowered
		}
	}

	return method
}

var controlKinds = map[string]m.NodeKind{
	"if_statement":           m.KindConditional,
	"for_statement":          m.KindFor,
	"enhanced_for_statement": m.KindForEach,
	"while_statement":        m.KindWhile,
	"do_statement":           m.KindDoWhile,
	"catch_clause":           m.KindCatch,
}

// lower converts a tree-sitter subtree into model nodes. Plain nodes with no
// control construct underneath are dropped; ok is false for them.
func lower(node *tree_sitter.Node) (m.Node, bool) {
	switch node.Kind() {
	case "try_statement", "try_with_resources_statement":
		return lowerTry(node), true
	}

	kind, isControl := controlKinds[node.Kind()]
	lowered := m.Node{Kind: kind, Line: lineOf(node), Children: lowerChildren(node, nil)}

	if !isControl && len(lowered.Children) == 0 {
		return m.Node{}, false
	}

	return lowered, true
}

// lowerTry splits a try statement into the protected part (resources, body
// and finally) and its catch clauses, which become handlers.
func lowerTry(node *tree_sitter.Node) m.Node {
	var handlers []m.Node

	children := lowerChildren(node, func(child *tree_sitter.Node) bool {
		if child.Kind() != "catch_clause" {
			return false
		}

		if handler, ok := lower(child); ok {
			handlers = append(handlers, handler)
		}

		return true
	})

	return m.Node{Kind: m.KindTry, Line: lineOf(node), Children: children, Handlers: handlers}
}

func lowerChildren(node *tree_sitter.Node, skip func(*tree_sitter.Node) bool) []m.Node {
	var children []m.Node

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || (skip != nil && skip(child)) {
			continue
		}

		if lowered, ok := lower(child); ok {
			children = append(children, lowered)
		}
	}

	return children
}

func firstErrorLine(node *tree_sitter.Node) int {
	if node.IsError() || node.IsMissing() {
		return lineOf(node)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.HasError() {
			return firstErrorLine(child)
		}
	}

	return lineOf(node)
}

func lineOf(node *tree_sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}
