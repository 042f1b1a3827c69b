//go:build cgo

package javasrc

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

// treeSitterParser parses with the tree-sitter Java grammar.
// A new sitter.Parser is created per call, so one value is safe for concurrent use.
type treeSitterParser struct {
	language *sitter.Language
}

// Available reports whether a Java parser is compiled in.
func Available() bool {
	return true
}

// New returns the tree-sitter Java parser.
func New() contract.JavaParser {
	return &treeSitterParser{language: java.GetLanguage()}
}

// Parse returns every class and interface in src, outer types before nested ones.
func (p *treeSitterParser) Parse(ctx context.Context, path string, src []byte) ([]schema.TypeDecl, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: %w", path, ErrSyntax)
	}

	w := &declWalker{src: src}
	w.visit(root)
	if w.faulty {
		return nil, fmt.Errorf("parse %s: %w", path, ErrSyntax)
	}
	return w.decls, nil
}

type declWalker struct {
	src    []byte
	decls  []schema.TypeDecl
	faulty bool
}

func (w *declWalker) visit(node *sitter.Node) {
	if node.Type() == errorNode || node.IsMissing() {
		w.faulty = true
		return
	}
	switch node.Type() {
	case classDeclaration, interfaceDeclaration:
		w.visitType(node)
		return
	case methodDeclaration:
		// Methods outside a class or interface body are ignored.
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		w.visit(node.Child(i))
	}
}

func (w *declWalker) visitType(node *sitter.Node) {
	idx := len(w.decls)
	decl := schema.TypeDecl{IsInterface: node.Type() == interfaceDeclaration}
	if name := node.ChildByFieldName("name"); name != nil {
		decl.Name = name.Content(w.src)
	}
	w.decls = append(w.decls, decl)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Type() == methodDeclaration {
			w.decls[idx].Methods = append(w.decls[idx].Methods, w.method(child))
			continue
		}
		w.visit(child)
	}
}

func (w *declWalker) method(node *sitter.Node) schema.Method {
	m := schema.Method{}
	if name := node.ChildByFieldName("name"); name != nil {
		m.Name = name.Content(w.src)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != modifiersNode {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if mod := child.Child(j); !mod.IsNamed() {
				m.Modifiers = append(m.Modifiers, mod.Type())
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return m
	}
	m.HasBody = true
	m.BodyText = body.Content(w.src)
	m.Body = statementTree(body)
	return m
}

func statementTree(block *sitter.Node) *schema.StatementTree {
	t := &schema.StatementTree{
		Text:   block.String(),
		Faulty: block.HasError(),
	}
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)
		if isComment(stmt.Type()) {
			continue
		}
		t.Statements = append(t.Statements, StatementKindOf(stmt.Type()))
	}
	return t
}
