package frontend

import (
	"strings"
)

// DiagCannotResolve is the diagnostic code for a name that did not
// resolve at its use site.
const DiagCannotResolve = "resolve.not-found"

// Diagnostic is a single analysis finding with a source span.
type Diagnostic struct {
	Code    string
	Path    string
	Message string
	Start   int
	End     int
}

// ImportDecl is one import statement of a unit.
type ImportDecl struct {
	Qualified string // the imported name, without a trailing .*
	Star      bool
	Static    bool
}

// SimpleName returns the last segment of the imported name.
func (i ImportDecl) SimpleName() string {
	if j := strings.LastIndexByte(i.Qualified, '.'); j >= 0 {
		return i.Qualified[j+1:]
	}
	return i.Qualified
}

// Unit is one analyzed source file inside an Analysis.
type Unit struct {
	Path    string
	File    FileID
	Tree    *Tree
	Package string
	Imports []ImportDecl
	Types   []*Element // top-level type declarations
	Diags   []Diagnostic

	scopes   []*Scope
	elems    map[*Node]*Element
	analysis *Analysis

	pendingVars   []pendingVar
	pendingSupers []pendingSuper
}

type pendingVar struct {
	elem *Element
	node *Node // the type node, nil for an inferred or missing type
}

type pendingSuper struct {
	elem       *Element
	superNode  *Node
	ifaceNodes []*Node
}

// Analysis is a bound set of units: a single file for interactive
// queries, or a batch for reference finding. It never outlives the
// (text, cursor) pair it was produced for.
type Analysis struct {
	Units []*Unit

	classes  map[string]*Element // qualified name -> source type element
	phantoms map[string]*Element
	builtins *builtinTable
}

// Bind runs the best-effort binding pass over the parsed units.
// Semantic problems surface as unit diagnostics, never as errors.
func Bind(units []*Unit) *Analysis {
	a := &Analysis{
		Units:    units,
		classes:  make(map[string]*Element),
		phantoms: make(map[string]*Element),
		builtins: newBuiltins(),
	}
	for _, u := range units {
		u.analysis = a
		u.elems = make(map[*Node]*Element)
		a.declareUnit(u)
	}
	for _, u := range units {
		a.resolveDeclTypes(u)
	}
	for _, u := range units {
		a.buildScopes(u)
	}
	for _, u := range units {
		a.checkResolution(u)
	}
	return a
}

// Unit returns the analyzed unit for a path, or nil.
func (a *Analysis) Unit(path string) *Unit {
	for _, u := range a.Units {
		if u.Path == path {
			return u
		}
	}
	return nil
}

// ObjectElement returns the synthetic java.lang.Object element. The
// frontend does not include it in supertype chains of interfaces by
// default, so callers append it explicitly.
func (a *Analysis) ObjectElement() *Element {
	return a.builtins.Object()
}

// declareUnit records the package, imports and type declarations of a
// unit, creating elements for every declaration it can see.
func (a *Analysis) declareUnit(u *Unit) {
	root := u.Tree.Root

	for _, child := range root.Children {
		switch child.Kind {
		case KindPackageDecl:
			u.Package = packageNameOf(u.Tree, child)
		case KindImportDecl:
			u.Imports = append(u.Imports, parseImport(u.Tree.Text(child)))
		}
	}

	var declare func(n *Node, owner *Element)
	declare = func(n *Node, owner *Element) {
		switch n.Kind {
		case KindClassDecl, KindInterfaceDecl, KindEnumDecl:
			elem := a.declareType(u, n, owner)
			if owner == nil {
				u.Types = append(u.Types, elem)
			} else {
				owner.Members = append(owner.Members, elem)
			}
			return
		}
		for _, c := range n.Children {
			declare(c, owner)
		}
	}
	for _, child := range root.Children {
		declare(child, nil)
	}
}

func (a *Analysis) declareType(u *Unit, n *Node, owner *Element) *Element {
	kind := ElemClass
	switch n.Kind {
	case KindInterfaceDecl:
		kind = ElemInterface
	case KindEnumDecl:
		kind = ElemEnum
	}

	name := u.Tree.Text(n.ChildByField("name"))
	qualified := name
	if owner != nil {
		qualified = owner.Qualified + "." + name
	} else if u.Package != "" {
		qualified = u.Package + "." + name
	}

	elem := &Element{
		Kind:      kind,
		Name:      name,
		Qualified: qualified,
		Mods:      modifiersOf(u.Tree, n),
		Owner:     owner,
		Decl:      n,
		Unit:      u,
	}
	u.elems[n] = elem
	if name != "" {
		a.classes[qualified] = elem
	}

	u.pendingSupers = append(u.pendingSupers, pendingSuper{
		elem:       elem,
		superNode:  superclassNode(n),
		ifaceNodes: interfaceNodes(n),
	})

	body := n.ChildByField("body")
	if body != nil {
		a.declareMembers(u, body, elem)
	}
	return elem
}

// declareMembers walks a type body and creates elements for fields,
// methods, constructors, enum constants and nested types.
func (a *Analysis) declareMembers(u *Unit, body *Node, owner *Element) {
	for _, m := range body.Children {
		switch m.Kind {
		case KindFieldDecl:
			typeNode := m.ChildByField("type")
			mods := modifiersOf(u.Tree, m)
			for _, d := range m.Children {
				if d.Kind != KindVarDeclarator {
					continue
				}
				f := &Element{
					Kind:  ElemField,
					Name:  u.Tree.Text(d.ChildByField("name")),
					Mods:  mods,
					Owner: owner,
					Decl:  d,
					Unit:  u,
				}
				u.elems[d] = f
				owner.Members = append(owner.Members, f)
				u.pendingVars = append(u.pendingVars, pendingVar{elem: f, node: typeNode})
			}

		case KindMethodDecl:
			me := &Element{
				Kind:  ElemMethod,
				Name:  u.Tree.Text(m.ChildByField("name")),
				Mods:  modifiersOf(u.Tree, m),
				Owner: owner,
				Decl:  m,
				Unit:  u,
			}
			u.elems[m] = me
			owner.Members = append(owner.Members, me)
			u.pendingVars = append(u.pendingVars, pendingVar{elem: me, node: m.ChildByField("type")})
			a.declareParams(u, m, me)

		case KindConstructorDecl:
			ce := &Element{
				Kind:  ElemConstructor,
				Name:  "<init>",
				Mods:  modifiersOf(u.Tree, m),
				Owner: owner,
				Decl:  m,
				Unit:  u,
			}
			u.elems[m] = ce
			owner.Members = append(owner.Members, ce)
			a.declareParams(u, m, ce)

		case KindEnumConstant:
			ec := &Element{
				Kind:  ElemEnumConstant,
				Name:  u.Tree.Text(m.ChildByField("name")),
				Mods:  ModPublic | ModStatic | ModFinal,
				Owner: owner,
				Type:  DeclaredType(owner),
				Decl:  m,
				Unit:  u,
			}
			u.elems[m] = ec
			owner.Members = append(owner.Members, ec)

		case KindClassDecl, KindInterfaceDecl, KindEnumDecl:
			nested := a.declareType(u, m, owner)
			owner.Members = append(owner.Members, nested)

		default:
			// enum_body_declarations wraps the member section of an enum
			if m.Type == "enum_body_declarations" {
				a.declareMembers(u, m, owner)
			}
		}
	}
}

func (a *Analysis) declareParams(u *Unit, decl *Node, exec *Element) {
	params := decl.ChildByField("parameters")
	if params == nil {
		return
	}
	for _, p := range params.Children {
		if p.Kind != KindParameter {
			continue
		}
		nameNode := p.ChildByField("name")
		if nameNode == nil {
			// spread_parameter keeps its name inside a declarator
			if d := p.FirstChildOfKind(KindVarDeclarator); d != nil {
				nameNode = d.ChildByField("name")
			}
		}
		pe := &Element{
			Kind:  ElemParameter,
			Name:  u.Tree.Text(nameNode),
			Owner: exec,
			Decl:  p,
			Unit:  u,
		}
		u.elems[p] = pe
		exec.Params = append(exec.Params, pe)
		u.pendingVars = append(u.pendingVars, pendingVar{elem: pe, node: p.ChildByField("type")})
	}
}

// resolveDeclTypes resolves the recorded type references of a unit once
// every unit's declarations are known.
func (a *Analysis) resolveDeclTypes(u *Unit) {
	for _, p := range u.pendingVars {
		p.elem.Type = a.resolveTypeNode(u, p.node)
	}
	for _, p := range u.pendingSupers {
		if p.superNode != nil {
			p.elem.Superclass = a.resolveTypeNode(u, p.superNode)
		}
		for _, ifn := range p.ifaceNodes {
			p.elem.Interfaces = append(p.elem.Interfaces, a.resolveTypeNode(u, ifn))
		}
	}
	u.pendingVars = nil
	u.pendingSupers = nil
}

// resolveTypeNode resolves a syntactic type reference to a type mirror.
func (a *Analysis) resolveTypeNode(u *Unit, n *Node) *Type {
	if n == nil {
		return NoneType
	}
	text := strings.TrimSpace(u.Tree.Text(n))
	dims := 0
	for strings.HasSuffix(text, "[]") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "[]"))
		dims++
	}
	t := a.ResolveTypeName(u, eraseGenerics(text))
	for i := 0; i < dims; i++ {
		t = ArrayType(t)
	}
	return t
}

// ResolveTypeName resolves a type name, simple or qualified, against the
// unit's own declarations, its imports, the analysis batch, and the
// builtin platform classes. Unresolvable names yield an error type.
func (a *Analysis) ResolveTypeName(u *Unit, name string) *Type {
	if name == "" {
		return NoneType
	}
	if t, ok := primitives[name]; ok {
		return t
	}

	if strings.Contains(name, ".") {
		if cls := a.classByQualified(name); cls != nil {
			return DeclaredType(cls)
		}
		return ErrorType(name)
	}

	// Nested then top-level types of this unit
	for _, top := range u.Types {
		if top.Name == name {
			return DeclaredType(top)
		}
		if nested := top.MemberNamed(name); nested != nil && nested.IsType() {
			return DeclaredType(nested)
		}
	}

	// Same package, across the batch
	if u.Package != "" {
		if cls := a.classes[u.Package+"."+name]; cls != nil {
			return DeclaredType(cls)
		}
	} else if cls := a.classes[name]; cls != nil {
		return DeclaredType(cls)
	}

	// Single imports win over star imports
	for _, imp := range u.Imports {
		if !imp.Star && imp.SimpleName() == name {
			if cls := a.classByQualified(imp.Qualified); cls != nil {
				return DeclaredType(cls)
			}
			return DeclaredType(a.phantom(imp.Qualified))
		}
	}
	for _, imp := range u.Imports {
		if imp.Star {
			if cls := a.classByQualified(imp.Qualified + "." + name); cls != nil {
				return DeclaredType(cls)
			}
		}
	}

	// java.lang is imported implicitly
	if cls, ok := a.builtins.bySimple[name]; ok {
		return DeclaredType(cls)
	}

	return ErrorType(name)
}

// classByQualified finds a type element by fully qualified name among
// the batch's sources and the builtin catalog.
func (a *Analysis) classByQualified(qualified string) *Element {
	if cls, ok := a.classes[qualified]; ok {
		return cls
	}
	if cls, ok := a.builtins.byQualified[qualified]; ok {
		return cls
	}
	return nil
}

// phantom returns a members-less stand-in for a class known only by its
// imported name.
func (a *Analysis) phantom(qualified string) *Element {
	if e, ok := a.phantoms[qualified]; ok {
		return e
	}
	name := qualified
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		name = qualified[i+1:]
	}
	e := &Element{
		Kind:      ElemClass,
		Name:      name,
		Qualified: qualified,
		Mods:      ModPublic,
	}
	a.phantoms[qualified] = e
	return e
}

// buildScopes materializes the lexical scope chain of a unit.
func (a *Analysis) buildScopes(u *Unit) {
	fileScope := &Scope{Node: u.Tree.Root}
	for _, t := range u.Types {
		fileScope.Locals = append(fileScope.Locals, t)
	}
	for _, imp := range u.Imports {
		if imp.Star || imp.Static {
			continue
		}
		if cls := a.classByQualified(imp.Qualified); cls != nil {
			fileScope.Locals = append(fileScope.Locals, cls)
		} else {
			fileScope.Locals = append(fileScope.Locals, a.phantom(imp.Qualified))
		}
	}
	u.scopes = append(u.scopes, fileScope)

	var walk func(n *Node, s *Scope)
	walk = func(n *Node, s *Scope) {
		switch n.Kind {
		case KindClassDecl, KindInterfaceDecl, KindEnumDecl:
			elem := u.elems[n]
			if elem != nil {
				span := n
				if body := n.ChildByField("body"); body != nil {
					span = body
				}
				cs := &Scope{Parent: s, Owner: elem, Node: span}
				cs.Locals = append(cs.Locals, a.thisVar(elem))
				if sv := a.superVar(elem); sv != nil {
					cs.Locals = append(cs.Locals, sv)
				}
				for _, m := range elem.Members {
					if m.IsType() {
						cs.Locals = append(cs.Locals, m)
					}
				}
				u.scopes = append(u.scopes, cs)
				s = cs
			}

		case KindMethodDecl, KindConstructorDecl:
			elem := u.elems[n]
			if elem != nil {
				ms := &Scope{Parent: s, Owner: elem, Node: n}
				ms.Locals = append(ms.Locals, elem.Params...)
				u.scopes = append(u.scopes, ms)
				s = ms
			}

		case KindBlock:
			// Only statement blocks open a scope; type bodies are covered
			// by their declaration's scope
			if n.Type == "block" || n.Type == "constructor_body" {
				bs := &Scope{Parent: s, Owner: s.Owner, Node: n}
				u.scopes = append(u.scopes, bs)
				s = bs
			}

		case KindLocalVarDecl:
			t := a.resolveTypeNode(u, n.ChildByField("type"))
			for _, d := range n.Children {
				if d.Kind != KindVarDeclarator {
					continue
				}
				le := &Element{
					Kind:  ElemLocal,
					Name:  u.Tree.Text(d.ChildByField("name")),
					Type:  t,
					Owner: s.Owner,
					Decl:  d,
					Unit:  u,
				}
				u.elems[d] = le
				s.Locals = append(s.Locals, le)
			}
		}
		for _, c := range n.Children {
			walk(c, s)
		}
	}
	walk(u.Tree.Root, fileScope)
}

// thisVar synthesizes the implicit `this` variable of a type scope.
func (a *Analysis) thisVar(typeElem *Element) *Element {
	return &Element{
		Kind:  ElemLocal,
		Name:  "this",
		Type:  DeclaredType(typeElem),
		Owner: typeElem,
		Unit:  typeElem.Unit,
	}
}

// superVar synthesizes the implicit `super` variable when the superclass
// resolved to a declared type.
func (a *Analysis) superVar(typeElem *Element) *Element {
	super := typeElem.Superclass
	if super == nil || super.Kind != TypeDeclared {
		return nil
	}
	return &Element{
		Kind:  ElemLocal,
		Name:  "super",
		Type:  super,
		Owner: typeElem,
		Unit:  typeElem.Unit,
	}
}

// checkResolution walks use sites and records a diagnostic for every
// name that fails to resolve.
func (a *Analysis) checkResolution(u *Unit) {
	Walk(u.Tree.Root, func(n *Node) bool {
		switch n.Kind {
		case KindPackageDecl, KindImportDecl:
			return false
		case KindTypeIdentifier:
			t := a.ResolveTypeName(u, u.Tree.Text(n))
			if t.Kind == TypeError {
				u.Diags = append(u.Diags, Diagnostic{
					Code:    DiagCannotResolve,
					Path:    u.Path,
					Message: "cannot resolve symbol " + u.Tree.Text(n),
					Start:   n.Start,
					End:     n.End,
				})
			}
		case KindIdentifier:
			if !isUseSite(n) {
				return true
			}
			if a.ElementAt(u, PathTo(n)) == nil {
				u.Diags = append(u.Diags, Diagnostic{
					Code:    DiagCannotResolve,
					Path:    u.Path,
					Message: "cannot resolve symbol " + u.Tree.Text(n),
					Start:   n.Start,
					End:     n.End,
				})
			}
		}
		return true
	})
}

// isUseSite reports whether an identifier node is a use of a name, as
// opposed to the name being declared.
func isUseSite(n *Node) bool {
	p := n.Parent
	if p == nil {
		return false
	}
	if n.Field == "name" {
		switch p.Kind {
		case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindEnumConstant,
			KindMethodDecl, KindConstructorDecl, KindParameter, KindVarDeclarator,
			KindMethodInvocation:
			// Invocation names resolve with their call, not alone
			return false
		}
	}
	// The right side of a member select is checked through its qualifier
	if n.Field == "field" && p.Kind == KindMemberSelect {
		return false
	}
	return true
}

// packageNameOf extracts the declared package name.
func packageNameOf(t *Tree, n *Node) string {
	for _, c := range n.Children {
		if c.Kind == KindIdentifier || c.Type == "scoped_identifier" {
			return t.Text(c)
		}
	}
	return ""
}

// parseImport parses the text of an import declaration.
func parseImport(text string) ImportDecl {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "import")
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	text = strings.TrimSpace(text)

	var imp ImportDecl
	if strings.HasPrefix(text, "static ") {
		imp.Static = true
		text = strings.TrimSpace(strings.TrimPrefix(text, "static "))
	}
	if strings.HasSuffix(text, ".*") {
		imp.Star = true
		text = strings.TrimSuffix(text, ".*")
	}
	imp.Qualified = text
	return imp
}

// modifiersOf parses the modifier keywords of a declaration.
func modifiersOf(t *Tree, decl *Node) Modifier {
	modsNode := decl.FirstChildOfKind(KindModifiers)
	if modsNode == nil {
		return 0
	}
	var mods Modifier
	for _, word := range strings.Fields(t.Text(modsNode)) {
		if strings.HasPrefix(word, "@") {
			continue
		}
		mods |= parseModifier(word)
	}
	return mods
}
