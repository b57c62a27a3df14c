//go:build cgo

package frontend

import (
	"context"
	"fmt"
	"os"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"jls/internal/errors"
)

// Parser wraps tree-sitter for Java parsing. It is safe for concurrent
// use; parses are serialized internally.
type Parser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewParser creates a new Java parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source text into a Tree. Syntax errors do not fail the
// parse; tree-sitter recovers and the broken regions surface as error
// nodes.
func (p *Parser) Parse(ctx context.Context, source string) (*Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tsTree, err := p.parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := convert(tsTree.RootNode(), nil, "")
	return NewTree(root, source), nil
}

// convert maps a tree-sitter node and its named descendants onto the
// closed Node representation.
func convert(ts *sitter.Node, parent *Node, field string) *Node {
	n := &Node{
		Kind:   kindOf(ts.Type()),
		Type:   ts.Type(),
		Field:  field,
		Start:  int(ts.StartByte()),
		End:    int(ts.EndByte()),
		Parent: parent,
	}
	count := int(ts.ChildCount())
	for i := 0; i < count; i++ {
		c := ts.Child(i)
		if c == nil || !c.IsNamed() {
			continue
		}
		n.Children = append(n.Children, convert(c, n, ts.FieldNameForChild(i)))
	}
	return n
}

// Compiler is the frontend's entry point: parsing plus best-effort
// semantic analysis over one file or a batch.
type Compiler struct {
	parser *Parser
}

// NewCompiler creates a Compiler backed by a tree-sitter parser.
func NewCompiler() *Compiler {
	return &Compiler{parser: NewParser()}
}

// Parse parses source text without any semantic analysis.
func (c *Compiler) Parse(path, source string) (*Tree, error) {
	return c.parser.Parse(context.Background(), source)
}

// AnalyzeSource parses and binds a single file whose contents are given.
// Semantic problems never fail the call; they surface as diagnostics on
// the unit.
func (c *Compiler) AnalyzeSource(path, source string) (*Analysis, error) {
	tree, err := c.parser.Parse(context.Background(), source)
	if err != nil {
		return nil, err
	}
	unit := &Unit{
		Path: path,
		File: LocalFile(path),
		Tree: tree,
	}
	return Bind([]*Unit{unit}), nil
}

// AnalyzeFiles reads and binds a batch of files as one analysis unit.
// Only read failures are fatal.
func (c *Compiler) AnalyzeFiles(paths []string) (*Analysis, error) {
	return c.AnalyzeFilesWith(paths, nil)
}

// AnalyzeFilesWith is AnalyzeFiles with in-memory contents overriding
// the on-disk text for the listed paths. Edited-but-unsaved buffers
// enter batch analysis this way.
func (c *Compiler) AnalyzeFilesWith(paths []string, overrides map[string]string) (*Analysis, error) {
	units := make([]*Unit, 0, len(paths))
	for _, path := range paths {
		source, ok := overrides[path]
		if !ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.Wrap(errors.IOFailure, "reading "+path, err)
			}
			source = string(data)
		}
		tree, err := c.parser.Parse(context.Background(), source)
		if err != nil {
			return nil, err
		}
		units = append(units, &Unit{
			Path: path,
			File: LocalFile(path),
			Tree: tree,
		})
	}
	return Bind(units), nil
}
