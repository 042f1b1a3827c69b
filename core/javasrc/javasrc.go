// Package javasrc turns Java source files into the type and method
// declarations the business-rule classifier works on.
//
// The tree-sitter backed parser needs cgo. In builds without cgo,
// Available reports false and New returns nil.
package javasrc

import (
	"errors"
	"fmt"

	"github.com/rncdiscover/rnc/schema"
)

// ErrSyntax is returned when a file has syntax errors outside method bodies.
var ErrSyntax = errors.New("java syntax error")

// Java grammar node types.
const (
	classDeclaration     = "class_declaration"
	interfaceDeclaration = "interface_declaration"
	methodDeclaration    = "method_declaration"
	modifiersNode        = "modifiers"
	lineComment          = "line_comment"
	blockComment         = "block_comment"
	errorNode            = "ERROR"
)

// statementKinds maps statement node types to what the classifier distinguishes.
var statementKinds = map[string]schema.StatementKind{
	"if_statement":                 schema.ConditionalStatement,
	"while_statement":              schema.LoopStatement,
	"for_statement":                schema.LoopStatement,
	"enhanced_for_statement":       schema.LoopStatement,
	"do_statement":                 schema.LoopStatement,
	"switch_expression":            schema.SwitchStatement,
	"switch_statement":             schema.SwitchStatement,
	"try_statement":                schema.TryStatement,
	"try_with_resources_statement": schema.TryStatement,
	"throw_statement":              schema.ThrowStatement,
	"local_variable_declaration":   schema.LocalDeclStatement,
	"return_statement":             schema.ReturnStatement,
}

// StatementKindOf returns the kind for a statement node type.
func StatementKindOf(nodeType string) schema.StatementKind {
	if kind, ok := statementKinds[nodeType]; ok {
		return kind
	}
	return schema.OtherStatement
}

func isComment(nodeType string) bool {
	return nodeType == lineComment || nodeType == blockComment
}

// Snippet wraps a lone method body into a compilation unit so it can be parsed.
func Snippet(name, body string) []byte {
	return fmt.Appendf(nil, "class Snippet {\n  public void %s() %s\n}\n", name, body)
}
