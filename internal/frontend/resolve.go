package frontend

import (
	"strings"
)

// Path is an ancestor chain of syntax nodes, smallest node first, file
// root last. Derived per query and never persisted.
type Path []*Node

// Leaf returns the smallest node of the chain.
func (p Path) Leaf() *Node {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Root returns the outermost node of the chain.
func (p Path) Root() *Node {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// PathTo builds the ancestor chain of a node from its parent links.
func PathTo(n *Node) Path {
	var path Path
	for cur := n; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	return path
}

// ScopeAt returns the innermost scope of the unit spanning the offset.
func (a *Analysis) ScopeAt(u *Unit, offset int) *Scope {
	var best *Scope
	for _, s := range u.scopes {
		if s.Node == nil || !s.Node.Contains(offset) {
			continue
		}
		if best == nil || s.Node.End-s.Node.Start <= best.Node.End-best.Node.Start {
			best = s
		}
	}
	if best == nil && len(u.scopes) > 0 {
		best = u.scopes[0]
	}
	return best
}

// ElementAt resolves the element denoted by the smallest node of the
// path. Returns nil when the node denotes nothing resolvable; callers
// treat that as a semantic gap, not an error.
func (a *Analysis) ElementAt(u *Unit, path Path) *Element {
	leaf := path.Leaf()
	if leaf == nil {
		return nil
	}
	return a.elementOf(u, leaf)
}

func (a *Analysis) elementOf(u *Unit, n *Node) *Element {
	switch n.Kind {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindMethodDecl,
		KindConstructorDecl, KindParameter, KindVarDeclarator, KindEnumConstant:
		return u.elems[n]

	case KindFieldDecl, KindLocalVarDecl:
		if d := n.FirstChildOfKind(KindVarDeclarator); d != nil {
			return u.elems[d]
		}
		return nil

	case KindThis:
		if t := a.ScopeAt(u, n.Start).EnclosingType(); t != nil {
			return a.thisVar(t)
		}
		return nil

	case KindSuper:
		if t := a.ScopeAt(u, n.Start).EnclosingType(); t != nil {
			return a.superVar(t)
		}
		return nil

	case KindIdentifier:
		if p := n.Parent; p != nil {
			// A declaration's own name denotes the declared element
			if n.Field == "name" {
				if e := u.elems[p]; e != nil {
					return e
				}
				if p.Kind == KindMethodInvocation {
					return a.resolveInvocation(u, p)
				}
			}
			if n.Field == "field" && p.Kind == KindMemberSelect {
				return a.resolveMember(u, p.ChildByField("object"), u.Tree.Text(n))
			}
		}
		return a.resolveName(u, n, u.Tree.Text(n))

	case KindTypeIdentifier:
		t := a.ResolveTypeName(u, u.Tree.Text(n))
		return t.Elem

	case KindMemberSelect:
		return a.resolveMember(u, n.ChildByField("object"), u.Tree.Text(n.ChildByField("field")))

	case KindMethodInvocation:
		return a.resolveInvocation(u, n)

	case KindObjectCreation:
		return a.resolveCreation(u, n)

	default:
		return nil
	}
}

// resolveName resolves a simple name at a use site: locals and
// parameters, then enclosing type members, then visible types and
// package roots.
func (a *Analysis) resolveName(u *Unit, site *Node, name string) *Element {
	if name == "" {
		return nil
	}
	scope := a.ScopeAt(u, site.Start)
	for s := scope; s != nil; s = s.Parent {
		for _, local := range s.VisibleLocals(site.Start) {
			if local.Name == name {
				return local
			}
		}
		if s.Owner != nil && s.Owner.IsType() {
			if m := a.lookupMember(s.Owner, name); m != nil {
				return m
			}
		}
	}

	if t := a.ResolveTypeName(u, name); t.Elem != nil {
		return t.Elem
	}
	return a.packageRoot(u, name)
}

// lookupMember finds a member by simple name on a type, walking the
// supertype chain, ending at Object.
func (a *Analysis) lookupMember(typeElem *Element, name string) *Element {
	seen := make(map[*Element]bool)
	var find func(t *Element) *Element
	find = func(t *Element) *Element {
		if t == nil || seen[t] {
			return nil
		}
		seen[t] = true
		if m := t.MemberNamed(name); m != nil {
			return m
		}
		if t.Superclass != nil && t.Superclass.Elem != nil {
			if m := find(t.Superclass.Elem); m != nil {
				return m
			}
		}
		for _, iface := range t.Interfaces {
			if iface.Elem != nil {
				if m := find(iface.Elem); m != nil {
					return m
				}
			}
		}
		return nil
	}
	if m := find(typeElem); m != nil {
		return m
	}
	if typeElem != a.builtins.Object() {
		return a.builtins.Object().MemberNamed(name)
	}
	return nil
}

// resolveMember resolves `object.name` for value, type and package
// qualifiers.
func (a *Analysis) resolveMember(u *Unit, object *Node, name string) *Element {
	if object == nil || name == "" {
		return nil
	}
	qualifier := a.elementOf(u, object)

	if qualifier != nil {
		switch {
		case qualifier.Kind == ElemPackage:
			if sub := a.packageNamed(qualifier.Qualified + "." + name); sub != nil {
				return sub
			}
			if cls := a.classByQualified(qualifier.Qualified + "." + name); cls != nil {
				return cls
			}
			return nil
		case qualifier.IsType():
			return a.lookupMember(qualifier, name)
		}
	}

	t := a.typeOfNode(u, object)
	if t == nil {
		return nil
	}
	switch t.Kind {
	case TypeDeclared:
		return a.lookupMember(t.Elem, name)
	case TypeArray:
		// Arrays expose Object's members (length is a compiler fiction)
		return a.builtins.Object().MemberNamed(name)
	default:
		return nil
	}
}

// resolveInvocation resolves the target method of a call, preferring an
// overload whose arity matches the call's.
func (a *Analysis) resolveInvocation(u *Unit, inv *Node) *Element {
	nameNode := inv.ChildByField("name")
	if nameNode == nil {
		return nil
	}
	name := u.Tree.Text(nameNode)
	argc := len(argumentNodes(inv))

	var candidates []*Element
	if object := inv.ChildByField("object"); object != nil {
		if target := a.resolveMember(u, object, name); target != nil {
			if target.Owner != nil {
				candidates = executablesNamed(target.Owner, name)
			} else {
				return target
			}
		}
	} else {
		if target := a.resolveName(u, nameNode, name); target != nil {
			if target.Kind == ElemMethod && target.Owner != nil {
				candidates = executablesNamed(target.Owner, name)
			} else {
				return target
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	for _, c := range candidates {
		if len(c.Params) == argc {
			return c
		}
	}
	return candidates[0]
}

// resolveCreation resolves `new T(...)` to a constructor of T, or to T
// itself when it declares none.
func (a *Analysis) resolveCreation(u *Unit, n *Node) *Element {
	typeNode := n.ChildByField("type")
	if typeNode == nil {
		return nil
	}
	t := a.resolveTypeNode(u, typeNode)
	if t.Elem == nil {
		return nil
	}
	argc := len(argumentNodes(n))
	ctors := t.Elem.MembersNamed("<init>")
	for _, c := range ctors {
		if len(c.Params) == argc {
			return c
		}
	}
	if len(ctors) > 0 {
		return ctors[0]
	}
	return t.Elem
}

// executablesNamed collects the overload set: members of owner sharing
// the simple name and an executable kind.
func executablesNamed(owner *Element, name string) []*Element {
	var out []*Element
	for _, m := range owner.Members {
		if m.Name == name && (m.Kind == ElemMethod || m.Kind == ElemConstructor) {
			out = append(out, m)
		}
	}
	return out
}

// argumentNodes returns the argument subtrees of a call.
func argumentNodes(call *Node) []*Node {
	args := call.ChildByField("arguments")
	if args == nil {
		return nil
	}
	return args.Children
}

// packageRoot resolves a name as the first segment of a known package.
func (a *Analysis) packageRoot(u *Unit, name string) *Element {
	for _, pkg := range a.knownPackages() {
		if pkg == name || strings.HasPrefix(pkg, name+".") {
			return a.packageElem(name)
		}
	}
	return nil
}

// packageNamed resolves a qualified name that denotes a package or a
// package prefix.
func (a *Analysis) packageNamed(qualified string) *Element {
	for _, pkg := range a.knownPackages() {
		if pkg == qualified || strings.HasPrefix(pkg, qualified+".") {
			return a.packageElem(qualified)
		}
	}
	return nil
}

// knownPackages lists every package the analysis can see: the batch's
// source packages plus the builtin platform packages.
func (a *Analysis) knownPackages() []string {
	seen := map[string]bool{"java.lang": true, "java.io": true}
	out := []string{"java.lang", "java.io"}
	for _, u := range a.Units {
		if u.Package != "" && !seen[u.Package] {
			seen[u.Package] = true
			out = append(out, u.Package)
		}
	}
	return out
}

// SubPackages returns the distinct package segments directly under the
// prefix among the packages the analysis can see.
func (a *Analysis) SubPackages(prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pkg := range a.knownPackages() {
		rest := ""
		switch {
		case prefix == "":
			rest = pkg
		case strings.HasPrefix(pkg, prefix+"."):
			rest = pkg[len(prefix)+1:]
		default:
			continue
		}
		seg := rest
		if i := strings.IndexByte(rest, '.'); i >= 0 {
			seg = rest[:i]
		}
		if seg != "" && !seen[seg] {
			seen[seg] = true
			out = append(out, seg)
		}
	}
	return out
}

// packageElem materializes a package element whose members are the
// classes declared directly in it.
func (a *Analysis) packageElem(qualified string) *Element {
	name := qualified
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		name = qualified[i+1:]
	}
	pkg := &Element{Kind: ElemPackage, Name: name, Qualified: qualified}
	add := func(cls *Element) {
		if cls.Owner != nil && cls.Owner.Kind == ElemPackage && cls.Owner.Qualified == qualified {
			pkg.Members = append(pkg.Members, cls)
			return
		}
		if cls.Unit != nil && cls.Unit.Package == qualified && cls.Owner == nil {
			pkg.Members = append(pkg.Members, cls)
		}
	}
	for _, cls := range a.classes {
		add(cls)
	}
	for _, cls := range a.builtins.byQualified {
		add(cls)
	}
	return pkg
}

// TypeOf computes the best-effort type of the expression at the path's
// smallest node. Returns nil for nodes that are not expressions.
func (a *Analysis) TypeOf(u *Unit, path Path) *Type {
	leaf := path.Leaf()
	if leaf == nil {
		return nil
	}
	return a.typeOfNode(u, leaf)
}

func (a *Analysis) typeOfNode(u *Unit, n *Node) *Type {
	switch n.Kind {
	case KindThis:
		if t := a.ScopeAt(u, n.Start).EnclosingType(); t != nil {
			return DeclaredType(t)
		}
		return ErrorType("this")

	case KindSuper:
		if t := a.ScopeAt(u, n.Start).EnclosingType(); t != nil && t.Superclass != nil {
			return t.Superclass
		}
		return DeclaredType(a.builtins.Object())

	case KindLiteral:
		return a.literalType(n.Type)

	case KindIdentifier, KindMemberSelect, KindMethodInvocation, KindObjectCreation:
		elem := a.elementOf(u, n)
		if elem == nil {
			return ErrorType(simpleNameOf(u, n))
		}
		switch elem.Kind {
		case ElemPackage:
			return &Type{Kind: TypePackage, Name: elem.Qualified}
		case ElemClass, ElemInterface, ElemEnum:
			return DeclaredType(elem)
		case ElemConstructor:
			return DeclaredType(elem.Owner)
		default:
			return elem.Type
		}

	case KindTypeIdentifier:
		return a.ResolveTypeName(u, u.Tree.Text(n))

	default:
		// Wrappers such as parenthesized expressions type as their child
		if len(n.Children) == 1 {
			return a.typeOfNode(u, n.Children[0])
		}
		return nil
	}
}

func (a *Analysis) literalType(tsType string) *Type {
	switch tsType {
	case "string_literal":
		return DeclaredType(a.builtins.bySimple["String"])
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return IntType
	case "decimal_floating_point_literal":
		return DoubleType
	case "character_literal":
		return CharType
	case "true", "false":
		return BooleanType
	case "null_literal":
		return NullType
	default:
		return NoneType
	}
}

func simpleNameOf(u *Unit, n *Node) string {
	switch n.Kind {
	case KindMemberSelect:
		return u.Tree.Text(n.ChildByField("field"))
	case KindMethodInvocation:
		return u.Tree.Text(n.ChildByField("name"))
	default:
		return u.Tree.Text(n)
	}
}

// DirectSupertypes returns the declared direct supertypes of a type:
// the superclass (Object for classes that omit one), then interfaces.
// Object itself is not appended for interfaces; callers that need the
// universal root add it explicitly.
func (a *Analysis) DirectSupertypes(t *Type) []*Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case TypeArray:
		return []*Type{DeclaredType(a.builtins.Object())}
	case TypeDeclared:
		elem := t.Elem
		if elem == nil {
			return nil
		}
		var out []*Type
		if elem.Superclass != nil {
			out = append(out, elem.Superclass)
		} else if elem.Kind == ElemClass && elem != a.builtins.Object() {
			out = append(out, DeclaredType(a.builtins.Object()))
		}
		out = append(out, elem.Interfaces...)
		return out
	default:
		return nil
	}
}

// IsAccessible reports whether an element can be named from a scope,
// by Java's modifier rules. Unknown cases degrade to accessible, the
// way best-effort analysis has to.
func (a *Analysis) IsAccessible(u *Unit, s *Scope, e *Element) bool {
	if e == nil {
		return false
	}
	switch {
	case e.Mods&ModPublic != 0:
		return true
	case e.Mods&ModPrivate != 0:
		from := s.EnclosingType()
		return from != nil && from.TopLevelType() == e.TopLevelType()
	case e.Mods&ModProtected != 0:
		if a.samePackage(u, e) {
			return true
		}
		from := s.EnclosingType()
		return from != nil && e.Owner != nil && a.isSubtypeOf(from, e.Owner)
	default:
		return a.samePackage(u, e)
	}
}

func (a *Analysis) samePackage(u *Unit, e *Element) bool {
	return u.Package == e.PackageName()
}

func (a *Analysis) isSubtypeOf(sub, sup *Element) bool {
	seen := make(map[*Element]bool)
	var walk func(t *Element) bool
	walk = func(t *Element) bool {
		if t == nil || seen[t] {
			return false
		}
		if t == sup {
			return true
		}
		seen[t] = true
		if t.Superclass != nil && walk(t.Superclass.Elem) {
			return true
		}
		for _, iface := range t.Interfaces {
			if walk(iface.Elem) {
				return true
			}
		}
		return false
	}
	return walk(sub)
}

// superclassNode extracts the extends clause's type node of a class.
func superclassNode(decl *Node) *Node {
	sc := decl.ChildByField("superclass")
	if sc == nil {
		return nil
	}
	if len(sc.Children) > 0 {
		return sc.Children[0]
	}
	return nil
}

// interfaceNodes extracts the implemented (or, for interfaces, extended)
// type nodes of a declaration.
func interfaceNodes(decl *Node) []*Node {
	var out []*Node
	collect := func(listParent *Node) {
		if listParent == nil {
			return
		}
		for _, c := range listParent.Children {
			if c.Type == "type_list" {
				out = append(out, c.Children...)
			}
		}
	}
	collect(decl.ChildByField("interfaces"))
	for _, c := range decl.Children {
		if c.Type == "extends_interfaces" {
			collect(c)
		}
	}
	return out
}
