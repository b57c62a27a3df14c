package complete

import (
	"sort"
	"strings"

	"jls/internal/focus"
	"jls/internal/frontend"
	"jls/internal/index"
	"jls/internal/logging"
)

// Keyword sets offered by position, mirroring what may legally start a
// construct there.
var (
	topLevelKeywords = []string{
		"package", "import", "public", "private", "protected",
		"abstract", "class", "interface", "enum",
	}
	classBodyKeywords = []string{
		"public", "private", "protected", "static", "final", "native",
		"synchronized", "abstract", "default", "class", "interface",
		"void", "boolean", "int", "long", "float", "double",
	}
	methodBodyKeywords = []string{
		"new", "assert", "try", "catch", "finally", "throw", "return",
		"break", "case", "continue", "default", "do", "else", "for",
		"if", "instanceof", "switch", "while", "var", "final", "class",
		"boolean", "int", "long", "float", "double", "this", "super",
		"true", "false", "null",
	}
)

// Engine answers completion, member and signature queries against
// focused snapshots. It holds no per-request state; the focus cache
// carries the reuse.
type Engine struct {
	cache   *focus.Cache
	catalog index.Catalog // nil when the workspace has no index yet
	log     *logging.Logger
}

func NewEngine(cache *focus.Cache, catalog index.Catalog, log *logging.Logger) *Engine {
	return &Engine{
		cache:   cache,
		catalog: catalog,
		log:     log.Named("complete"),
	}
}

// Completions produces candidates at the cursor. The kind of completion
// follows from the text right before the partial token: a dot asks for
// members of the qualifier, a double colon for referencable members,
// anything else for names in scope plus keywords plus catalog classes.
// limitHint caps the catalog stream only; zero streams unbounded.
func (g *Engine) Completions(path, contents string, line, column, limitHint int) (*Result, error) {
	snap, err := g.cache.Ensure(path, contents, line, column)
	if err != nil {
		return nil, err
	}

	offset := snap.Offset
	start := offset
	for start > 0 && isIdentByte(contents[start-1]) {
		start--
	}
	partial := contents[start:offset]

	if start >= 2 && contents[start-1] == '.' {
		return g.memberResult(snap, start-2, partial, false)
	}
	if start >= 3 && contents[start-1] == ':' && contents[start-2] == ':' {
		return g.memberResult(snap, start-3, partial, true)
	}
	return g.scopeResult(snap, offset, partial, limitHint)
}

// Members lists the members of the expression at the cursor, the dotted
// completion without the textual dispatch. isReference asks for the
// `::`-referencable view, which includes constructors.
func (g *Engine) Members(path, contents string, line, column int, isReference bool) (*Result, error) {
	snap, err := g.cache.Ensure(path, contents, line, column)
	if err != nil {
		return nil, err
	}
	return g.memberResult(snap, snap.Offset, "", isReference)
}

// ScopeMembers lists every element nameable at the cursor without
// qualification: locals, parameters, fields and methods of enclosing
// types, and visible type names.
func (g *Engine) ScopeMembers(path, contents string, line, column int) ([]*frontend.Element, error) {
	snap, err := g.cache.Ensure(path, contents, line, column)
	if err != nil {
		return nil, err
	}
	return g.collectScope(snap, snap.Offset, ""), nil
}

// memberResult resolves the qualifier ending at qualOffset and lists
// its members, filtered by the partial token.
func (g *Engine) memberResult(snap *focus.Snapshot, qualOffset int, partial string, isReference bool) (*Result, error) {
	path, err := focus.FindPath(snap.Tree, qualOffset)
	if err != nil {
		return nil, err
	}
	a, u := snap.Analysis, snap.Unit
	scope := a.ScopeAt(u, qualOffset)

	// The deepest node at the offset may be a fragment of the
	// qualifier (an argument list, a closing token); walk outward to
	// the first node that denotes something.
	var elem *frontend.Element
	var typ *frontend.Type
	for _, n := range path {
		if e := a.ElementAt(u, frontend.PathTo(n)); e != nil {
			elem = e
			break
		}
		if t := a.TypeOf(u, frontend.PathTo(n)); t != nil && t.Kind != frontend.TypeNone {
			typ = t
			break
		}
	}

	dedupe := newDeduper(partial)
	switch {
	case elem != nil && elem.Kind == frontend.ElemPackage:
		g.packageMembers(a, u, elem, dedupe)
	case elem != nil && elem.IsType():
		g.typeMembers(a, u, scope, elem, isReference, dedupe)
	case elem != nil:
		g.valueMembers(a, u, scope, elem.Type, dedupe)
	case typ != nil:
		g.valueMembers(a, u, scope, typ, dedupe)
	}
	return &Result{Items: dedupe.items}, nil
}

// packageMembers lists sub-packages and classes of a package qualifier.
func (g *Engine) packageMembers(a *frontend.Analysis, u *frontend.Unit, pkg *frontend.Element, d *deduper) {
	segments := a.SubPackages(pkg.Qualified)
	if g.catalog != nil {
		if more, err := g.catalog.SubPackagesOf(pkg.Qualified); err == nil {
			segments = append(segments, more...)
		}
	}
	sort.Strings(segments)
	for _, seg := range segments {
		d.add(packagePartItem(seg), "pkg:"+seg, seg)
	}
	for _, cls := range pkg.Members {
		d.add(elementItem(cls), cls.Qualified, cls.Name)
	}
	if g.catalog != nil {
		_ = g.catalog.TopLevelClasses(func(c index.Class) bool {
			if c.PackageName == pkg.Qualified && c.AccessibleFrom(u.Package) {
				d.add(notImportedItem(c.QualifiedName), c.QualifiedName, c.SimpleName)
			}
			return true
		})
	}
}

// typeMembers lists the static view of a type qualifier: static
// members, nested types, and the class literal. The referencable view
// adds instance methods and constructors.
func (g *Engine) typeMembers(a *frontend.Analysis, u *frontend.Unit, scope *frontend.Scope, typeElem *frontend.Element, isReference bool, d *deduper) {
	for _, owner := range g.typeClosure(a, frontend.DeclaredType(typeElem)) {
		for _, m := range owner.Members {
			if m.Kind == frontend.ElemConstructor {
				if isReference {
					d.add(elementItem(m), m.String(), "new")
				}
				continue
			}
			if !m.IsStatic() && !m.IsType() && !(isReference && m.Kind == frontend.ElemMethod) {
				continue
			}
			if !a.IsAccessible(u, scope, m) {
				continue
			}
			d.add(elementItem(m), m.String(), m.Name)
		}
	}
	if !isReference {
		d.add(Item{Kind: ItemClassLiteral}, "class-literal", "class")
	}
}

// valueMembers lists the instance view of an expression qualifier:
// non-static, non-constructor members over the supertype closure.
func (g *Engine) valueMembers(a *frontend.Analysis, u *frontend.Unit, scope *frontend.Scope, t *frontend.Type, d *deduper) {
	if t == nil || !t.HasMembers() {
		return
	}
	for _, owner := range g.typeClosure(a, t) {
		for _, m := range owner.Members {
			if m.Kind == frontend.ElemConstructor || m.IsStatic() {
				continue
			}
			if !a.IsAccessible(u, scope, m) {
				continue
			}
			d.add(elementItem(m), m.String(), m.Name)
		}
	}
}

// typeClosure flattens a type's supertype closure into the declaring
// elements to collect members from: the type itself, its declared
// supertypes transitively, and Object last.
func (g *Engine) typeClosure(a *frontend.Analysis, t *frontend.Type) []*frontend.Element {
	var out []*frontend.Element
	seen := make(map[*frontend.Element]bool)
	var walk func(t *frontend.Type)
	walk = func(t *frontend.Type) {
		if t == nil || t.Elem == nil || seen[t.Elem] {
			return
		}
		seen[t.Elem] = true
		out = append(out, t.Elem)
		for _, sup := range a.DirectSupertypes(t) {
			walk(sup)
		}
	}
	walk(t)
	if obj := a.ObjectElement(); !seen[obj] {
		out = append(out, obj)
	}
	return out
}

// scopeResult is the unqualified completion: scope members, keywords,
// and catalog classes not yet imported, in that order. The catalog
// stream is walked until it survives the filters past the limit hint;
// a surviving element that no longer fits marks the result incomplete,
// even when scope members alone filled it.
func (g *Engine) scopeResult(snap *focus.Snapshot, offset int, partial string, limitHint int) (*Result, error) {
	d := newDeduper(partial)
	for _, e := range g.collectScope(snap, offset, partial) {
		d.add(elementItem(e), e.String(), e.Name)
	}
	for _, word := range g.keywordsAt(snap, offset) {
		d.add(keywordItem(word), "kw:"+word, word)
	}

	result := &Result{}
	if g.catalog == nil {
		result.Items = d.items
		return result, nil
	}

	a, u := snap.Analysis, snap.Unit
	imported := make(map[string]bool)
	for _, imp := range u.Imports {
		if !imp.Star {
			imported[imp.Qualified] = true
		}
	}

	err := g.catalog.TopLevelClasses(func(c index.Class) bool {
		// Cheapest filters first; the stream can be long.
		if partial != "" && !strings.HasPrefix(c.SimpleName, partial) {
			return true
		}
		if imported[c.QualifiedName] || c.InPackage(u.Package) {
			return true
		}
		if !c.AccessibleFrom(u.Package) {
			return true
		}
		if limitHint > 0 && len(d.items) >= limitHint {
			result.IsIncomplete = true
			return false
		}
		// Classes already resolvable by simple name complete as plain
		// elements; anything else needs an import.
		if t := a.ResolveTypeName(u, c.SimpleName); t.Elem != nil && t.Elem.Qualified == c.QualifiedName {
			d.add(elementItem(t.Elem), c.QualifiedName, c.SimpleName)
		} else {
			d.add(notImportedItem(c.QualifiedName), c.QualifiedName, c.SimpleName)
		}
		return true
	})
	if err != nil {
		g.log.Warn("class catalog unavailable", map[string]interface{}{"error": err.Error()})
	}
	result.Items = d.items
	return result, nil
}

// collectScope walks the scope chain outward, unwrapping this and super
// into their types' members. In a static context the instance view is
// suppressed.
func (g *Engine) collectScope(snap *focus.Snapshot, offset int, partial string) []*frontend.Element {
	a, u := snap.Analysis, snap.Unit
	scope := a.ScopeAt(u, offset)
	if scope == nil {
		return nil
	}
	staticCtx := scope.IsStatic()

	var out []*frontend.Element
	seen := make(map[string]bool)
	add := func(e *frontend.Element) {
		if partial != "" && !strings.HasPrefix(e.Name, partial) {
			return
		}
		key := e.String() + "\x00" + e.Name
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, e)
	}

	for s := scope; s != nil; s = s.Parent {
		for _, local := range s.VisibleLocals(offset) {
			if local.Name == "this" || local.Name == "super" {
				if staticCtx {
					continue
				}
				add(local)
				g.unwrapReceiver(a, u, scope, local, staticCtx, add)
				continue
			}
			add(local)
		}
		// Static members stay reachable even where this does not.
		if staticCtx && s.Owner != nil && s.Owner.IsType() {
			for _, owner := range g.typeClosure(a, frontend.DeclaredType(s.Owner)) {
				for _, m := range owner.Members {
					if m.IsStatic() && a.IsAccessible(u, scope, m) {
						add(m)
					}
				}
			}
		}
	}
	return out
}

// unwrapReceiver adds the members reachable through a this or super
// variable.
func (g *Engine) unwrapReceiver(a *frontend.Analysis, u *frontend.Unit, scope *frontend.Scope, receiver *frontend.Element, staticCtx bool, add func(*frontend.Element)) {
	if receiver.Type == nil {
		return
	}
	for _, owner := range g.typeClosure(a, receiver.Type) {
		for _, m := range owner.Members {
			if m.Kind == frontend.ElemConstructor {
				continue
			}
			if staticCtx && !m.IsStatic() {
				continue
			}
			if !a.IsAccessible(u, scope, m) {
				continue
			}
			add(m)
		}
	}
}

// keywordsAt picks the keyword set for the cursor's syntactic position.
func (g *Engine) keywordsAt(snap *focus.Snapshot, offset int) []string {
	path, err := focus.FindPath(snap.Tree, offset)
	if err != nil {
		return topLevelKeywords
	}
	inType := false
	for _, n := range path {
		switch n.Kind {
		case frontend.KindMethodDecl, frontend.KindConstructorDecl:
			if body := n.ChildByField("body"); body != nil && body.Contains(offset) {
				return methodBodyKeywords
			}
		case frontend.KindClassDecl, frontend.KindInterfaceDecl, frontend.KindEnumDecl:
			inType = true
		}
	}
	if inType {
		return classBodyKeywords
	}
	return topLevelKeywords
}

// deduper accumulates items, dropping duplicates by identity key and
// names not matching the partial token.
type deduper struct {
	partial string
	seen    map[string]bool
	items   []Item
}

func newDeduper(partial string) *deduper {
	return &deduper{partial: partial, seen: make(map[string]bool)}
}

func (d *deduper) add(item Item, key, name string) {
	if d.partial != "" && !strings.HasPrefix(name, d.partial) {
		return
	}
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.items = append(d.items, item)
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
