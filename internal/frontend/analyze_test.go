package frontend

import (
	"strings"
	"testing"
)

// tnode builds a syntax node and wires the parent links of its children.
func tnode(kind NodeKind, tsType, field string, start, end int, children ...*Node) *Node {
	n := &Node{Kind: kind, Type: tsType, Field: field, Start: start, End: end, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

// span locates the nth occurrence of a token and returns its start and
// end offsets. Failing to find it is a bug in the test fixture.
func span(t *testing.T, src, token string, nth int) (int, int) {
	t.Helper()
	from := 0
	for i := 0; i < nth; i++ {
		at := strings.Index(src[from:], token)
		if at < 0 {
			t.Fatalf("occurrence %d of %q not found", nth, token)
		}
		from += at + 1
	}
	start := from - 1
	return start, start + len(token)
}

// boundUnit hand-assembles the syntax tree of
//
//	class A { private int xf; int f(int pp) { int yy; yy = xf; } static void g() { } }
//
// in the shape the parser would produce, and binds it. Building the tree
// directly keeps the binder tests independent of the cgo parser.
func boundUnit(t *testing.T) (*Analysis, *Unit, map[string]*Node) {
	t.Helper()
	src := "class A { private int xf; int f(int pp) { int yy; yy = xf; } static void g() { } }"

	s := func(token string, nth int) (int, int) { return span(t, src, token, nth) }

	nameAStart, nameAEnd := s("A", 1)
	nameA := tnode(KindIdentifier, "identifier", "name", nameAStart, nameAEnd)

	modsStart, modsEnd := s("private", 1)
	fieldMods := tnode(KindModifiers, "modifiers", "", modsStart, modsEnd)
	ftStart, ftEnd := s("int", 1)
	fieldType := tnode(KindOther, "integral_type", "type", ftStart, ftEnd)
	xfStart, xfEnd := s("xf", 1)
	nameXf := tnode(KindIdentifier, "identifier", "name", xfStart, xfEnd)
	declXf := tnode(KindVarDeclarator, "variable_declarator", "declarator", xfStart, xfEnd, nameXf)
	fieldDecl := tnode(KindFieldDecl, "field_declaration", "", modsStart, xfEnd+1, fieldMods, fieldType, declXf)

	rtStart, rtEnd := s("int", 2)
	typeF := tnode(KindOther, "integral_type", "type", rtStart, rtEnd)
	fStart, fEnd := s("f(", 1)
	nameF := tnode(KindIdentifier, "identifier", "name", fStart, fEnd-1)
	ptStart, ptEnd := s("int", 3)
	typePp := tnode(KindOther, "integral_type", "type", ptStart, ptEnd)
	ppStart, ppEnd := s("pp", 1)
	namePp := tnode(KindIdentifier, "identifier", "name", ppStart, ppEnd)
	paramPp := tnode(KindParameter, "formal_parameter", "", ptStart, ppEnd, typePp, namePp)
	paramsF := tnode(KindOther, "formal_parameters", "parameters", fEnd-1, ppEnd+1, paramPp)

	ltStart, ltEnd := s("int", 4)
	typeYy := tnode(KindOther, "integral_type", "type", ltStart, ltEnd)
	yyStart, yyEnd := s("yy", 1)
	nameYy := tnode(KindIdentifier, "identifier", "name", yyStart, yyEnd)
	declYy := tnode(KindVarDeclarator, "variable_declarator", "declarator", yyStart, yyEnd, nameYy)
	localDecl := tnode(KindLocalVarDecl, "local_variable_declaration", "", ltStart, yyEnd+1, typeYy, declYy)

	useYyStart, useYyEnd := s("yy", 2)
	useYy := tnode(KindIdentifier, "identifier", "left", useYyStart, useYyEnd)
	useXfStart, useXfEnd := s("xf", 2)
	useXf := tnode(KindIdentifier, "identifier", "right", useXfStart, useXfEnd)
	assign := tnode(KindOther, "assignment_expression", "", useYyStart, useXfEnd, useYy, useXf)
	exprStmt := tnode(KindOther, "expression_statement", "", useYyStart, useXfEnd+1, assign)

	fBodyStart, _ := s("{ int yy", 1)
	fBodyEnd, _ := s("}", 1)
	bodyF := tnode(KindBlock, "block", "body", fBodyStart, fBodyEnd+1, localDecl, exprStmt)
	methodF := tnode(KindMethodDecl, "method_declaration", "", rtStart, fBodyEnd+1, typeF, nameF, paramsF, bodyF)

	gmStart, gmEnd := s("static", 1)
	modsG := tnode(KindModifiers, "modifiers", "", gmStart, gmEnd)
	vtStart, vtEnd := s("void", 1)
	typeG := tnode(KindOther, "void_type", "type", vtStart, vtEnd)
	gStart, gEnd := s("g(", 1)
	nameG := tnode(KindIdentifier, "identifier", "name", gStart, gEnd-1)
	paramsG := tnode(KindOther, "formal_parameters", "parameters", gEnd-1, gEnd+1)
	gBodyStart, _ := s("{ }", 1)
	gBodyEnd := gBodyStart + 2
	bodyG := tnode(KindBlock, "block", "body", gBodyStart, gBodyEnd+1)
	methodG := tnode(KindMethodDecl, "method_declaration", "", gmStart, gBodyEnd+1, modsG, typeG, nameG, paramsG, bodyG)

	bodyStart, _ := s("{ private", 1)
	classBody := tnode(KindBlock, "class_body", "body", bodyStart, len(src), fieldDecl, methodF, methodG)
	classA := tnode(KindClassDecl, "class_declaration", "", 0, len(src), nameA, classBody)
	root := tnode(KindFile, "program", "", 0, len(src), classA)

	unit := &Unit{Path: "A.java", Tree: NewTree(root, src)}
	a := Bind([]*Unit{unit})

	nodes := map[string]*Node{
		"classA":  classA,
		"nameXf":  nameXf,
		"declXf":  declXf,
		"methodF": methodF,
		"bodyF":   bodyF,
		"useYy":   useYy,
		"useXf":   useXf,
		"bodyG":   bodyG,
	}
	return a, unit, nodes
}

func TestBindDeclaresTypesAndMembers(t *testing.T) {
	_, u, _ := boundUnit(t)

	if len(u.Types) != 1 {
		t.Fatalf("got %d top-level types, want 1", len(u.Types))
	}
	classA := u.Types[0]
	if classA.Kind != ElemClass || classA.Name != "A" || classA.Qualified != "A" {
		t.Errorf("class element = %v %q %q", classA.Kind, classA.Name, classA.Qualified)
	}

	xf := classA.MemberNamed("xf")
	if xf == nil {
		t.Fatal("field xf not declared")
	}
	if xf.Kind != ElemField || xf.Mods&ModPrivate == 0 || xf.Type != IntType {
		t.Errorf("field xf = %v mods %v type %v", xf.Kind, xf.Mods, xf.Type)
	}

	f := classA.MemberNamed("f")
	if f == nil {
		t.Fatal("method f not declared")
	}
	if f.Kind != ElemMethod || f.Type != IntType {
		t.Errorf("method f = %v return %v", f.Kind, f.Type)
	}
	if len(f.Params) != 1 || f.Params[0].Name != "pp" || f.Params[0].Type != IntType {
		t.Errorf("method f params = %v", f.Params)
	}
	if got := f.String(); got != "f(int)" {
		t.Errorf("f.String() = %q", got)
	}

	g := classA.MemberNamed("g")
	if g == nil {
		t.Fatal("method g not declared")
	}
	if !g.IsStatic() || g.Type != VoidType {
		t.Errorf("method g static=%v return %v", g.IsStatic(), g.Type)
	}

	if len(u.Diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", u.Diags)
	}
}

func TestElementAtResolvesUseSites(t *testing.T) {
	a, u, nodes := boundUnit(t)

	yy := a.ElementAt(u, PathTo(nodes["useYy"]))
	if yy == nil || yy.Kind != ElemLocal || yy.Name != "yy" {
		t.Errorf("use of yy resolved to %v", yy)
	}

	xf := a.ElementAt(u, PathTo(nodes["useXf"]))
	if xf == nil || xf.Kind != ElemField || xf.Name != "xf" {
		t.Errorf("use of xf resolved to %v", xf)
	}

	// A declarator's own name denotes the declared element.
	if got := a.ElementAt(u, PathTo(nodes["nameXf"])); got != xf {
		t.Errorf("declaration name of xf resolved to %v, want the field", got)
	}

	f := a.ElementAt(u, PathTo(nodes["methodF"]))
	if f == nil || f.Kind != ElemMethod || f.Name != "f" {
		t.Errorf("method declaration resolved to %v", f)
	}
}

func TestScopeAtStaticContext(t *testing.T) {
	a, u, nodes := boundUnit(t)

	inF := a.ScopeAt(u, nodes["bodyF"].Start+1)
	if inF == nil || inF.IsStatic() {
		t.Errorf("scope inside f static = %v", inF)
	}
	if m := inF.EnclosingMethod(); m == nil || m.Name != "f" {
		t.Errorf("enclosing method = %v", m)
	}

	inG := a.ScopeAt(u, nodes["bodyG"].Start+1)
	if inG == nil || !inG.IsStatic() {
		t.Errorf("scope inside g should be static")
	}
	if ty := inG.EnclosingType(); ty == nil || ty.Name != "A" {
		t.Errorf("enclosing type = %v", ty)
	}
}

func TestTypeOfExpression(t *testing.T) {
	a, u, nodes := boundUnit(t)

	if got := a.TypeOf(u, PathTo(nodes["useYy"])); got != IntType {
		t.Errorf("TypeOf(yy) = %v", got)
	}
	if got := a.TypeOf(u, PathTo(nodes["useXf"])); got != IntType {
		t.Errorf("TypeOf(xf) = %v", got)
	}
}

func TestDirectSupertypesDefaultToObject(t *testing.T) {
	a, u, _ := boundUnit(t)

	sups := a.DirectSupertypes(DeclaredType(u.Types[0]))
	if len(sups) != 1 || sups[0].Elem != a.ObjectElement() {
		t.Errorf("supertypes of A = %v", sups)
	}
}

func TestLookupMemberReachesObject(t *testing.T) {
	a, u, _ := boundUnit(t)

	m := a.lookupMember(u.Types[0], "hashCode")
	if m == nil || m.Kind != ElemMethod {
		t.Errorf("hashCode lookup = %v", m)
	}
}

func TestResolveTypeName(t *testing.T) {
	a, u, _ := boundUnit(t)

	if got := a.ResolveTypeName(u, "A"); got.Kind != TypeDeclared || got.Elem != u.Types[0] {
		t.Errorf("ResolveTypeName(A) = %v", got)
	}
	if got := a.ResolveTypeName(u, "int"); got != IntType {
		t.Errorf("ResolveTypeName(int) = %v", got)
	}

	str := a.ResolveTypeName(u, "String")
	if str.Kind != TypeDeclared || str.Elem == nil || str.Elem.Qualified != "java.lang.String" {
		t.Fatalf("ResolveTypeName(String) = %v", str)
	}
	if n := len(str.Elem.MembersNamed("substring")); n != 2 {
		t.Errorf("String.substring overloads = %d, want 2", n)
	}

	if got := a.ResolveTypeName(u, "Bogus"); got.Kind != TypeError || got.Name != "Bogus" {
		t.Errorf("ResolveTypeName(Bogus) = %v", got)
	}
	// java.util is not part of the builtin catalog.
	if got := a.ResolveTypeName(u, "java.util.List"); got.Kind != TypeError {
		t.Errorf("ResolveTypeName(java.util.List) = %v", got)
	}
	if got := a.ResolveTypeName(u, "java.lang.Object"); got.Kind != TypeDeclared || got.Elem.Qualified != "java.lang.Object" {
		t.Errorf("ResolveTypeName(java.lang.Object) = %v", got)
	}
}

func TestIsAccessiblePrivateField(t *testing.T) {
	a, u, nodes := boundUnit(t)

	xf := u.Types[0].MemberNamed("xf")
	inF := a.ScopeAt(u, nodes["bodyF"].Start+1)
	if !a.IsAccessible(u, inF, xf) {
		t.Error("private field should be accessible from its own class")
	}
}

func TestCheckResolutionReportsUnknownNames(t *testing.T) {
	src := "class B { void h() { qq = 1; } }"
	s := func(token string, nth int) (int, int) { return span(t, src, token, nth) }

	nbStart, nbEnd := s("B", 1)
	nameB := tnode(KindIdentifier, "identifier", "name", nbStart, nbEnd)
	vtStart, vtEnd := s("void", 1)
	typeH := tnode(KindOther, "void_type", "type", vtStart, vtEnd)
	hStart, hEnd := s("h(", 1)
	nameH := tnode(KindIdentifier, "identifier", "name", hStart, hEnd-1)
	paramsH := tnode(KindOther, "formal_parameters", "parameters", hEnd-1, hEnd+1)

	qqStart, qqEnd := s("qq", 1)
	useQq := tnode(KindIdentifier, "identifier", "left", qqStart, qqEnd)
	litStart, litEnd := s("1", 1)
	lit := tnode(KindLiteral, "decimal_integer_literal", "right", litStart, litEnd)
	assign := tnode(KindOther, "assignment_expression", "", qqStart, litEnd, useQq, lit)
	stmt := tnode(KindOther, "expression_statement", "", qqStart, litEnd+1, assign)

	hBodyStart, _ := s("{ qq", 1)
	hBodyEnd, _ := s("; }", 1)
	bodyH := tnode(KindBlock, "block", "body", hBodyStart, hBodyEnd+3, stmt)
	methodH := tnode(KindMethodDecl, "method_declaration", "", vtStart, hBodyEnd+3, typeH, nameH, paramsH, bodyH)

	cbStart, _ := s("{ void", 1)
	classBody := tnode(KindBlock, "class_body", "body", cbStart, len(src), methodH)
	classB := tnode(KindClassDecl, "class_declaration", "", 0, len(src), nameB, classBody)
	root := tnode(KindFile, "program", "", 0, len(src), classB)

	unit := &Unit{Path: "B.java", Tree: NewTree(root, src)}
	Bind([]*Unit{unit})

	if len(unit.Diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(unit.Diags), unit.Diags)
	}
	d := unit.Diags[0]
	if d.Code != DiagCannotResolve {
		t.Errorf("diagnostic code = %q", d.Code)
	}
	if d.Message != "cannot resolve symbol qq" {
		t.Errorf("diagnostic message = %q", d.Message)
	}
	if d.Start != qqStart || d.End != qqEnd {
		t.Errorf("diagnostic span = %d..%d, want %d..%d", d.Start, d.End, qqStart, qqEnd)
	}
}
