//go:build cgo

package frontend

import (
	"strings"
	"testing"
)

const parserFixture = `package demo;

class Counter {
    private int count;

    int increment(int by) {
        count = count + by;
        return count;
    }

    static void reset() { }
}
`

func TestParseProducesTaggedTree(t *testing.T) {
	c := NewCompiler()
	tree, err := c.Parse("Counter.java", parserFixture)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Root.Kind != KindFile {
		t.Fatalf("root kind = %v", tree.Root.Kind)
	}

	var class *Node
	Walk(tree.Root, func(n *Node) bool {
		if n.Kind == KindClassDecl && class == nil {
			class = n
		}
		return true
	})
	if class == nil {
		t.Fatal("no class declaration found")
	}
	if got := tree.Text(class.ChildByField("name")); got != "Counter" {
		t.Errorf("class name = %q", got)
	}

	var methods []string
	Walk(class, func(n *Node) bool {
		if n.Kind == KindMethodDecl {
			methods = append(methods, tree.Text(n.ChildByField("name")))
		}
		return true
	})
	if len(methods) != 2 || methods[0] != "increment" || methods[1] != "reset" {
		t.Errorf("methods = %v", methods)
	}
}

func TestAnalyzeSourceBindsAndResolves(t *testing.T) {
	c := NewCompiler()
	a, err := c.AnalyzeSource("Counter.java", parserFixture)
	if err != nil {
		t.Fatal(err)
	}
	u := a.Unit("Counter.java")
	if u == nil {
		t.Fatal("no unit for path")
	}
	if u.Package != "demo" {
		t.Errorf("package = %q", u.Package)
	}
	if len(u.Diags) != 0 {
		t.Errorf("diagnostics = %v", u.Diags)
	}

	counter := u.Types[0]
	inc := counter.MemberNamed("increment")
	if inc == nil || inc.Type != IntType || len(inc.Params) != 1 {
		t.Fatalf("increment = %v", inc)
	}
	if !counter.MemberNamed("reset").IsStatic() {
		t.Error("reset should be static")
	}

	// The `count` inside `return count` resolves to the field.
	var use *Node
	Walk(u.Tree.Root, func(n *Node) bool {
		if n.Kind == KindIdentifier && n.Field != "name" && u.Tree.Text(n) == "count" {
			use = n // keep the last one, inside the return statement
		}
		return true
	})
	if use == nil {
		t.Fatal("no use of count found")
	}
	elem := a.ElementAt(u, PathTo(use))
	if elem == nil || elem.Kind != ElemField || elem.Name != "count" {
		t.Errorf("use of count resolved to %v", elem)
	}
}

func TestAnalyzeSourceReportsUnresolvedNames(t *testing.T) {
	src := "class Broken { Widget w; }"
	c := NewCompiler()
	a, err := c.AnalyzeSource("Broken.java", src)
	if err != nil {
		t.Fatal(err)
	}
	u := a.Unit("Broken.java")
	found := false
	for _, d := range u.Diags {
		if d.Code == DiagCannotResolve && strings.Contains(d.Message, "Widget") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a cannot-resolve diagnostic for Widget, got %v", u.Diags)
	}
}

func TestParseRecoversFromSyntaxErrors(t *testing.T) {
	c := NewCompiler()
	tree, err := c.Parse("Broken.java", "class Broken { void f( }")
	if err != nil {
		t.Fatal(err)
	}
	var sawClass bool
	Walk(tree.Root, func(n *Node) bool {
		if n.Kind == KindClassDecl {
			sawClass = true
		}
		return true
	})
	if !sawClass {
		t.Error("recovery should still expose the class declaration")
	}
}
