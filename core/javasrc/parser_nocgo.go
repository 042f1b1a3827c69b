//go:build !cgo

package javasrc

import "github.com/rncdiscover/rnc/internal/contract"

// Available reports whether a Java parser is compiled in.
func Available() bool {
	return false
}

// New returns nil: the tree-sitter grammar requires cgo.
func New() contract.JavaParser {
	return nil
}
