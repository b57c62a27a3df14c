// Package frontend provides the parser and best-effort semantic analysis
// the rest of the service is built on: syntax trees, elements, scopes,
// types and accessibility judgments for Java source text.
package frontend

import (
	"strings"
)

// FileID is an opaque handle for a source file, usable as a cache key.
type FileID struct {
	Scheme string
	Path   string
}

// LocalFile returns the FileID for a file on disk.
func LocalFile(path string) FileID {
	return FileID{Scheme: "file", Path: path}
}

func (f FileID) String() string {
	return f.Scheme + "://" + f.Path
}

// NodeKind is a closed tag over the syntax node shapes the analysis
// understands. Anything else is KindOther and only participates in
// span-based traversal.
type NodeKind int

const (
	KindFile NodeKind = iota
	KindPackageDecl
	KindImportDecl
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindEnumConstant
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindParameter
	KindLocalVarDecl
	KindVarDeclarator
	KindBlock
	KindMethodInvocation
	KindObjectCreation
	KindMemberSelect
	KindMemberReference
	KindIdentifier
	KindTypeIdentifier
	KindThis
	KindSuper
	KindLiteral
	KindArgumentList
	KindModifiers
	KindError
	KindOther
)

var kindNames = map[NodeKind]string{
	KindFile:             "file",
	KindPackageDecl:      "package",
	KindImportDecl:       "import",
	KindClassDecl:        "class",
	KindInterfaceDecl:    "interface",
	KindEnumDecl:         "enum",
	KindEnumConstant:     "enum_constant",
	KindFieldDecl:        "field",
	KindMethodDecl:       "method",
	KindConstructorDecl:  "constructor",
	KindParameter:        "parameter",
	KindLocalVarDecl:     "local_var",
	KindVarDeclarator:    "var_declarator",
	KindBlock:            "block",
	KindMethodInvocation: "method_invocation",
	KindObjectCreation:   "object_creation",
	KindMemberSelect:     "member_select",
	KindMemberReference:  "member_reference",
	KindIdentifier:       "identifier",
	KindTypeIdentifier:   "type_identifier",
	KindThis:             "this",
	KindSuper:            "super",
	KindLiteral:          "literal",
	KindArgumentList:     "arguments",
	KindModifiers:        "modifiers",
	KindError:            "error",
	KindOther:            "other",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// kindOf maps raw tree-sitter java node types onto the closed kind set.
func kindOf(tsType string) NodeKind {
	switch tsType {
	case "program":
		return KindFile
	case "package_declaration":
		return KindPackageDecl
	case "import_declaration":
		return KindImportDecl
	case "class_declaration":
		return KindClassDecl
	case "interface_declaration":
		return KindInterfaceDecl
	case "enum_declaration":
		return KindEnumDecl
	case "enum_constant":
		return KindEnumConstant
	case "field_declaration", "constant_declaration":
		return KindFieldDecl
	case "method_declaration":
		return KindMethodDecl
	case "constructor_declaration":
		return KindConstructorDecl
	case "formal_parameter", "spread_parameter":
		return KindParameter
	case "local_variable_declaration":
		return KindLocalVarDecl
	case "variable_declarator":
		return KindVarDeclarator
	case "block", "class_body", "interface_body", "enum_body", "constructor_body":
		return KindBlock
	case "method_invocation":
		return KindMethodInvocation
	case "object_creation_expression":
		return KindObjectCreation
	case "field_access":
		return KindMemberSelect
	case "method_reference":
		return KindMemberReference
	case "identifier":
		return KindIdentifier
	case "type_identifier":
		return KindTypeIdentifier
	case "this":
		return KindThis
	case "super":
		return KindSuper
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal",
		"binary_integer_literal", "decimal_floating_point_literal", "string_literal",
		"character_literal", "true", "false", "null_literal":
		return KindLiteral
	case "argument_list":
		return KindArgumentList
	case "modifiers":
		return KindModifiers
	case "ERROR":
		return KindError
	default:
		return KindOther
	}
}

// Node is a single syntax node. Start and End are byte offsets into the
// tree's source; End is the offset one past the last byte, and containment
// checks treat both boundaries as inside the node.
type Node struct {
	Kind     NodeKind
	Type     string // raw grammar node type
	Field    string // field name of this node in its parent, if any
	Start    int
	End      int
	Parent   *Node
	Children []*Node
}

// Contains reports whether the offset falls inside the node's span,
// boundaries included.
func (n *Node) Contains(offset int) bool {
	return n.Start <= offset && offset <= n.End
}

// ChildByField returns the first child carrying the given field name.
func (n *Node) ChildByField(name string) *Node {
	for _, c := range n.Children {
		if c.Field == name {
			return c
		}
	}
	return nil
}

// ChildrenByField returns every child carrying the given field name.
func (n *Node) ChildrenByField(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Field == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of the given kind.
func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order. Returning false from
// visit skips the node's children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Tree is a parsed source file.
type Tree struct {
	Root   *Node
	Source string
	lines  *LineMap
}

// NewTree builds a Tree around an already-constructed root node. The
// parser uses this; tests may too.
func NewTree(root *Node, source string) *Tree {
	return &Tree{Root: root, Source: source, lines: NewLineMap(source)}
}

// Text returns the source text covered by the node.
func (t *Tree) Text(n *Node) string {
	if n == nil {
		return ""
	}
	start, end := n.Start, n.End
	if start < 0 {
		start = 0
	}
	if end > len(t.Source) {
		end = len(t.Source)
	}
	if start > end {
		return ""
	}
	return t.Source[start:end]
}

// Lines returns the tree's line map.
func (t *Tree) Lines() *LineMap {
	return t.lines
}

// LineMap converts between (line, column) pairs and byte offsets.
// Lines and columns are 1-based, as editors report them.
type LineMap struct {
	starts []int // byte offset of each line start
	length int
}

// NewLineMap indexes the line starts of the given text.
func NewLineMap(text string) *LineMap {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineMap{starts: starts, length: len(text)}
}

// Offset resolves a 1-based (line, column) pair to a byte offset, clamped
// to the text bounds.
func (m *LineMap) Offset(line, column int) int {
	if line < 1 {
		line = 1
	}
	if line > len(m.starts) {
		return m.length
	}
	off := m.starts[line-1] + column - 1
	if off < 0 {
		off = 0
	}
	// Clamp to the end of the line
	lineEnd := m.length
	if line < len(m.starts) {
		lineEnd = m.starts[line]
	}
	if off > lineEnd {
		off = lineEnd
	}
	return off
}

// Position resolves a byte offset back to a 1-based (line, column) pair.
func (m *LineMap) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > m.length {
		offset = m.length
	}
	// Binary search for the last line start <= offset
	lo, hi := 0, len(m.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - m.starts[lo] + 1
}

// LineCount returns the number of lines in the mapped text.
func (m *LineMap) LineCount() int {
	return len(m.starts)
}

// identifierLike reports whether the text looks like a Java identifier.
func identifierLike(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

// eraseGenerics strips a trailing type-argument list from a type name,
// e.g. "List<String>" -> "List".
func eraseGenerics(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}
