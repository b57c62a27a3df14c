//go:build !cgo

// Package frontend provides the parser and best-effort semantic analysis
// the rest of the service is built on. This stub is used when CGO is not
// available; parsing requires the tree-sitter runtime.
package frontend

import (
	"jls/internal/errors"
)

// ErrNoCGO is returned when parsing is unavailable because the
// tree-sitter runtime was not built in.
var ErrNoCGO = errors.New(errors.ParseUnavailable, "java parsing requires CGO (tree-sitter)")

// Parser wraps tree-sitter for Java parsing.
// Stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new Java parser. Returns a stub when CGO is disabled.
func NewParser() *Parser {
	return &Parser{}
}

// Compiler is the frontend's entry point.
// Stub implementation for non-CGO builds.
type Compiler struct{}

// NewCompiler creates a Compiler. Returns a stub when CGO is disabled.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Parse always fails without CGO.
func (c *Compiler) Parse(path, source string) (*Tree, error) {
	return nil, ErrNoCGO
}

// AnalyzeSource always fails without CGO.
func (c *Compiler) AnalyzeSource(path, source string) (*Analysis, error) {
	return nil, ErrNoCGO
}

// AnalyzeFiles always fails without CGO.
func (c *Compiler) AnalyzeFiles(paths []string) (*Analysis, error) {
	return nil, ErrNoCGO
}

// AnalyzeFilesWith always fails without CGO.
func (c *Compiler) AnalyzeFilesWith(paths []string, overrides map[string]string) (*Analysis, error) {
	return nil, ErrNoCGO
}
